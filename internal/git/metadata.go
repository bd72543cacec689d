package git

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
)

// RepositoryMetadata describes the work tree a script was read from.
type RepositoryMetadata struct {
	BranchName         *string `json:"branch_name,omitempty"`
	CommitHash         *string `json:"commit_hash,omitempty"`
	RepositoryFullName *string `json:"repository_full_name,omitempty"`
	Subfolder          string  `json:"subfolder,omitempty"`
	RepoRootFolder     string  `json:"repo_root_folder,omitempty"`
}

// CollectRepositoryMetadata collects branch name, commit hash, repository
// full name, subfolder and repository root folder for the given path. The
// path may point at a file inside the work tree.
func CollectRepositoryMetadata(sourcePath string) (*RepositoryMetadata, error) {
	if sourcePath == "" {
		return &RepositoryMetadata{}, fmt.Errorf("source path is not set")
	}

	if absSource, err := filepath.Abs(sourcePath); err == nil {
		sourcePath = absSource
	}
	if info, err := os.Stat(sourcePath); err == nil && !info.IsDir() {
		sourcePath = filepath.Dir(sourcePath)
	}

	md := &RepositoryMetadata{
		RepoRootFolder: filepath.Clean(sourcePath),
	}

	repoRootFolder, err := findGitRepositoryPath(sourcePath)
	if err != nil {
		return md, err
	}

	md.RepoRootFolder = filepath.Clean(repoRootFolder)

	repo, err := git.PlainOpen(repoRootFolder)
	if err != nil {
		return md, fmt.Errorf("failed to open repository: %w", err)
	}

	if rel, err := filepath.Rel(repoRootFolder, sourcePath); err == nil && rel != "." {
		md.Subfolder = filepath.ToSlash(rel)
	}

	if head, err := repo.Head(); err == nil {
		if head.Name().IsBranch() {
			branchName := head.Name().Short()
			md.BranchName = &branchName
		}

		hash := head.Hash().String()
		md.CommitHash = &hash
	}

	if remote, err := repo.Remote("origin"); err == nil {
		if cfg := remote.Config(); cfg != nil && len(cfg.URLs) > 0 {
			repositoryFullName := strings.TrimSuffix(cfg.URLs[0], ".git")
			md.RepositoryFullName = &repositoryFullName
		}
	}

	return md, nil
}

// findGitRepositoryPath walks up from the given folder until it finds a
// directory containing .git.
func findGitRepositoryPath(folder string) (string, error) {
	current := folder
	for {
		if _, err := os.Stat(filepath.Join(current, ".git")); err == nil {
			return current, nil
		}
		parent := filepath.Dir(current)
		if parent == current {
			return "", fmt.Errorf("no git repository found above %q", folder)
		}
		current = parent
	}
}
