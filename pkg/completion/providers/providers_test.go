package providers_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/arenito/pkg/completion/providers"
)

func TestProviders(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Providers Suite")
}

var _ = Describe("New", func() {
	DescribeTable("builds each supported provider",
		func(name string, needsKey bool) {
			p, err := providers.New(name, providers.Config{})
			Expect(err).NotTo(HaveOccurred())
			Expect(p.Name()).To(Equal(name))
			Expect(p.RequiresCredential()).To(Equal(needsKey))
		},
		Entry("gemini", providers.Gemini, true),
		Entry("ollama", providers.Ollama, false),
	)

	It("rejects unknown names", func() {
		_, err := providers.New("openai", providers.Config{})
		Expect(err).To(MatchError(ContainSubstring(`unknown provider: "openai"`)))
	})

	It("lists every name New accepts", func() {
		for _, name := range providers.SupportedProviders() {
			_, err := providers.New(name, providers.Config{})
			Expect(err).NotTo(HaveOccurred())
		}
	})
})
