package gemini

import (
	"fmt"
	"strings"

	"github.com/scenescope/scenescope/internal/script"
)

const validationSystemPrompt = `You are a script continuity checker. You review film and video scripts ` +
	`scene by scene and report structural, continuity and character problems. ` +
	`Respond with a JSON array only, no prose and no markdown fences. Each element must have the fields: ` +
	`"scene_number" (integer, 1-based), "issue_type" (short identifier), "description", ` +
	`"location" (where in the scene), "severity" ("high", "medium" or "low") and ` +
	`"suggestions" (array of strings). Return an empty array when the script has no issues.`

const storyboardSystemPrompt = `You are a storyboard artist's assistant. You turn script scenes into ` +
	`storyboard frame descriptions. Respond with a JSON array only, no prose and no markdown fences. ` +
	`Each element must have the fields: "scene_number" (integer, 1-based), "description" ` +
	`(one visual paragraph for the frame), "camera_angle", "camera_movement", ` +
	`"characters" (array of names) and "notes".`

// ValidationPrompt renders the system and user prompts for a validation
// run. Scene content beyond the limit is truncated.
func ValidationPrompt(doc *script.Document, limit int) (string, string) {
	var b strings.Builder
	b.WriteString("Review the following script for continuity issues, missing scene information, ")
	b.WriteString("and character inconsistencies.\n\n")
	writeScenes(&b, doc)

	return validationSystemPrompt, Truncate(b.String(), limit)
}

// StoryboardPrompt renders the system and user prompts for a storyboard
// run. Scene content beyond the limit is truncated.
func StoryboardPrompt(doc *script.Document, limit int) (string, string) {
	var b strings.Builder
	b.WriteString("Create one storyboard frame per scene for the following script.\n\n")
	writeScenes(&b, doc)

	return storyboardSystemPrompt, Truncate(b.String(), limit)
}

func writeScenes(b *strings.Builder, doc *script.Document) {
	for _, scene := range doc.Scenes {
		fmt.Fprintf(b, "--- Scene %d: %s ---\n", scene.Index, scene.Heading)
		if scene.Location != "" {
			fmt.Fprintf(b, "Location: %s\n", scene.Location)
		}
		if scene.TimeOfDay != "" {
			fmt.Fprintf(b, "Time of day: %s\n", scene.TimeOfDay)
		}
		if len(scene.Characters) > 0 {
			fmt.Fprintf(b, "Characters: %s\n", strings.Join(scene.Characters, ", "))
		}
		b.WriteString(scene.Body)
		b.WriteString("\n\n")
	}
}

// Truncate cuts content to the given rune-safe byte limit and marks the cut.
func Truncate(content string, limit int) string {
	if limit <= 0 || len(content) <= limit {
		return content
	}
	cut := limit
	for cut > 0 && !isRuneStart(content[cut]) {
		cut--
	}
	return content[:cut] + "\n\n[content truncated]"
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
