package shared

import (
	"net/rpc"

	"github.com/hashicorp/go-plugin"

	"github.com/scenescope/scenescope/pkg/shared/config"
)

// Analyzer is the contract every analyzer plugin implements: a single
// synchronous call-and-result interface over parsed scenes.
type Analyzer interface {
	Setup(configData config.Config) (bool, error)
	Analyze(args AnalyzerAnalyzeRequest) (AnalyzerAnalyzeResponse, error)
}

// AnalyzerAnalyzeRequest represents a single analysis request.
type AnalyzerAnalyzeRequest struct {
	ScriptPath     string   // Path to the source script file
	ScenesPath     string   // Path to the parsed scenes JSON for the script
	ResultsPath    string   // Path where the plugin writes its findings JSON
	ConfigPath     string   // Path to an analyzer-specific configuration file
	AdditionalArgs []string // Additional arguments for the analyzer
}

// AnalyzerAnalyzeResponse is returned by the plugin once findings are persisted.
type AnalyzerAnalyzeResponse struct {
	ResultsPath   string
	FindingsCount int
}

type AnalyzerRPCClient struct{ client *rpc.Client }

func (g *AnalyzerRPCClient) Setup(configData config.Config) (bool, error) {
	var resp bool
	if err := g.client.Call("Plugin.Setup", configData, &resp); err != nil {
		return false, err
	}
	return resp, nil
}

func (g *AnalyzerRPCClient) Analyze(req AnalyzerAnalyzeRequest) (AnalyzerAnalyzeResponse, error) {
	var resp AnalyzerAnalyzeResponse
	if err := g.client.Call("Plugin.Analyze", req, &resp); err != nil {
		return resp, err
	}
	return resp, nil
}

type AnalyzerRPCServer struct {
	Impl Analyzer
}

func (s *AnalyzerRPCServer) Setup(configData config.Config, resp *bool) error {
	var err error
	*resp, err = s.Impl.Setup(configData)
	return err
}

func (s *AnalyzerRPCServer) Analyze(args AnalyzerAnalyzeRequest, resp *AnalyzerAnalyzeResponse) error {
	var err error
	*resp, err = s.Impl.Analyze(args)
	return err
}

type AnalyzerPlugin struct {
	Impl Analyzer
}

func (p *AnalyzerPlugin) Server(*plugin.MuxBroker) (interface{}, error) {
	return &AnalyzerRPCServer{Impl: p.Impl}, nil
}

func (AnalyzerPlugin) Client(b *plugin.MuxBroker, c *rpc.Client) (interface{}, error) {
	return &AnalyzerRPCClient{client: c}, nil
}
