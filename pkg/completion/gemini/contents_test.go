package gemini

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"google.golang.org/genai"

	"github.com/papercomputeco/arenito/pkg/completion"
	"github.com/papercomputeco/arenito/pkg/conversation"
	"github.com/papercomputeco/arenito/pkg/prompt"
)

var _ = Describe("toContents", func() {
	It("maps conversation roles onto Gemini roles in order", func() {
		contents := toContents([]conversation.Turn{
			{Role: conversation.RoleUser, Text: "Hola"},
			{Role: conversation.RoleModel, Text: "¡Hola! ¿En qué te ayudo?"},
			{Role: conversation.RoleUser, Text: "¿Cuánto cuesta 20kg?"},
		})

		Expect(contents).To(HaveLen(3))
		Expect(contents[0].Role).To(Equal(genai.RoleUser))
		Expect(contents[1].Role).To(Equal(genai.RoleModel))
		Expect(contents[2].Role).To(Equal(genai.RoleUser))
		Expect(contents[2].Parts).To(HaveLen(1))
		Expect(contents[2].Parts[0].Text).To(Equal("¿Cuánto cuesta 20kg?"))
	})

	It("returns no contents for no turns", func() {
		Expect(toContents(nil)).To(BeEmpty())
	})
})

var _ = Describe("toConfig", func() {
	It("keeps the instruction out of the contents", func() {
		temperature := 0.7
		topK := 40
		cfg := toConfig(prompt.Prompt{Instruction: "eres un vendedor"}, completion.Options{
			Temperature:     &temperature,
			TopK:            &topK,
			MaxOutputTokens: 1024,
		})

		Expect(cfg.SystemInstruction).NotTo(BeNil())
		Expect(cfg.SystemInstruction.Parts[0].Text).To(Equal("eres un vendedor"))
		Expect(*cfg.Temperature).To(BeNumerically("~", 0.7, 1e-6))
		Expect(*cfg.TopK).To(Equal(float32(40)))
		Expect(cfg.TopP).To(BeNil())
		Expect(cfg.MaxOutputTokens).To(Equal(int32(1024)))
	})

	It("omits the system instruction when empty", func() {
		Expect(toConfig(prompt.Prompt{}, completion.Options{}).SystemInstruction).To(BeNil())
	})
})
