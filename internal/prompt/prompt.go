// Package prompt assembles the completion request for one exchange: the
// persona system text, the recent conversation window, the three retrieved
// context blocks and the current question.
package prompt

import (
	"fmt"

	"github.com/tharu280/Comic-Character-based-RAG-mental-healthcare-assistant-chatbot/internal/memory"
	"github.com/tharu280/Comic-Character-based-RAG-mental-healthcare-assistant-chatbot/internal/model"
)

// Persona is the fixed character framing that conditions every response.
const Persona = `You are Uncle Iroh from Avatar: The Last Airbender—gentle, wise, loving, and poetic. Speak with warmth and calm, using metaphor and gentle humor. Your words carry the wisdom of a lifetime and a soothing presence.

Keep your response thoughtful and not too long. Focus on providing comfort and insight with gentle simplicity, like a sip of perfectly brewed tea.`

// questionTemplate frames the retrieved context blocks and the user's
// question as the final human turn of the request.
const questionTemplate = `You may draw on the following wisdom if the conversation calls for deeper guidance:

- Iroh’s teachings and philosophy:
%s

- Emotional support and mental well-being insights:
%s

- Rational or scientific ideas:
%s

If the user's message is light-hearted or casual, you may respond with kindness and simplicity, without referencing the additional context.

Question:
%s`

// Build fills the prompt template. The history window is carried over turn by
// turn between the persona message and the framed question.
func Build(history []memory.Turn, irohContext, mentalContext, philosophyContext, question string) []model.Message {
	messages := make([]model.Message, 0, len(history)+2)
	messages = append(messages, model.Message{Role: model.RoleSystem, Content: Persona})

	for _, turn := range history {
		messages = append(messages, model.Message{Role: roleFor(turn.Role), Content: turn.Content})
	}

	messages = append(messages, model.Message{
		Role:    model.RoleUser,
		Content: fmt.Sprintf(questionTemplate, irohContext, mentalContext, philosophyContext, question),
	})
	return messages
}

// roleFor maps a conversation turn role onto the completion request role.
func roleFor(r memory.Role) string {
	switch r {
	case memory.RoleSystem:
		return model.RoleSystem
	case memory.RoleAI:
		return model.RoleAssistant
	default:
		return model.RoleUser
	}
}
