// Package prompt assembles the provider payload for a single chat turn from
// the behavioral instruction, the sanitized history and the new message.
package prompt

import (
	"github.com/papercomputeco/arenito/pkg/conversation"
)

// Prompt is the provider-agnostic payload for one completion.
// Instruction is delivered to the provider as a system directive and is never
// part of Turns.
type Prompt struct {
	Instruction string
	Turns       []conversation.Turn
}

// Assemble builds the prompt for one turn. history is expected to be
// sanitized already; it is copied, not interpreted. message becomes the final
// user turn. The instruction is opaque and passed through verbatim.
func Assemble(instruction string, history conversation.History, message string) Prompt {
	turns := make([]conversation.Turn, 0, len(history)+1)
	turns = append(turns, history...)
	turns = append(turns, conversation.Turn{
		Role: conversation.RoleUser,
		Text: message,
	})

	return Prompt{
		Instruction: instruction,
		Turns:       turns,
	}
}

// Last returns the final turn of the prompt, which is always the new user
// message for prompts built by Assemble.
func (p Prompt) Last() conversation.Turn {
	if len(p.Turns) == 0 {
		return conversation.Turn{}
	}
	return p.Turns[len(p.Turns)-1]
}
