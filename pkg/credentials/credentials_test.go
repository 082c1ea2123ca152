package credentials_test

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/arenito/pkg/credentials"
)

func TestCredentials(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Credentials Suite")
}

var _ = Describe("Manager", func() {
	var (
		tmpDir string
		mgr    *credentials.Manager
	)

	BeforeEach(func() {
		var err error
		tmpDir, err = os.MkdirTemp("", "credentials-test-*")
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(os.RemoveAll, tmpDir)

		mgr, err = credentials.NewManager(tmpDir)
		Expect(err).NotTo(HaveOccurred())
	})

	It("keeps credentials.toml in the resolved directory", func() {
		Expect(mgr.Path()).To(Equal(filepath.Join(tmpDir, "credentials.toml")))
	})

	Describe("Read", func() {
		It("reads a missing file as empty", func() {
			f, err := mgr.Read()
			Expect(err).NotTo(HaveOccurred())
			Expect(f.Keys).NotTo(BeNil())
			Expect(f.Keys).To(BeEmpty())
		})

		It("parses the providers table", func() {
			data := "version = 0\n\n[providers.gemini]\napi_key = \"AIza-test-key\"\n"
			Expect(os.WriteFile(mgr.Path(), []byte(data), 0o600)).To(Succeed())

			f, err := mgr.Read()
			Expect(err).NotTo(HaveOccurred())
			Expect(f.Keys).To(HaveKeyWithValue("gemini", credentials.Key{APIKey: "AIza-test-key"}))
		})

		It("reports malformed TOML", func() {
			Expect(os.WriteFile(mgr.Path(), []byte("not valid [[["), 0o600)).To(Succeed())

			f, err := mgr.Read()
			Expect(err).To(MatchError(ContainSubstring("parsing credentials")))
			Expect(f).To(BeNil())
		})
	})

	Describe("Write", func() {
		It("restricts the file to its owner", func() {
			Expect(mgr.Write(&credentials.File{
				Keys: map[string]credentials.Key{"gemini": {APIKey: "AIza-test"}},
			})).To(Succeed())

			info, err := os.Stat(mgr.Path())
			Expect(err).NotTo(HaveOccurred())
			Expect(info.Mode().Perm()).To(Equal(os.FileMode(0o600)))
		})

		It("rejects nil", func() {
			Expect(mgr.Write(nil)).To(HaveOccurred())
		})
	})

	Describe("SetKey and GetKey", func() {
		It("replaces an existing key", func() {
			Expect(mgr.SetKey("gemini", "AIza-old")).To(Succeed())
			Expect(mgr.SetKey("gemini", "AIza-new")).To(Succeed())

			key, err := mgr.GetKey("gemini")
			Expect(err).NotTo(HaveOccurred())
			Expect(key).To(Equal("AIza-new"))
		})

		It("leaves other providers alone", func() {
			Expect(mgr.SetKey("gemini", "AIza-primary")).To(Succeed())
			Expect(mgr.SetKey("gemini-staging", "AIza-staging")).To(Succeed())

			key, err := mgr.GetKey("gemini")
			Expect(err).NotTo(HaveOccurred())
			Expect(key).To(Equal("AIza-primary"))
		})

		It("returns empty for a provider with no key", func() {
			key, err := mgr.GetKey("nonexistent")
			Expect(err).NotTo(HaveOccurred())
			Expect(key).To(BeEmpty())
		})
	})

	Describe("RemoveKey", func() {
		It("drops the key", func() {
			Expect(mgr.SetKey("gemini", "AIza-test")).To(Succeed())
			Expect(mgr.RemoveKey("gemini")).To(Succeed())

			key, err := mgr.GetKey("gemini")
			Expect(err).NotTo(HaveOccurred())
			Expect(key).To(BeEmpty())
		})

		It("accepts a provider that was never stored", func() {
			Expect(mgr.RemoveKey("nonexistent")).To(Succeed())
		})
	})

	Describe("Entries", func() {
		It("is empty with nothing stored", func() {
			entries, err := mgr.Entries()
			Expect(err).NotTo(HaveOccurred())
			Expect(entries).To(BeEmpty())
		})

		It("lists masked keys sorted by provider", func() {
			Expect(mgr.SetKey("gemini-staging", "AIzaSyStaging0002")).To(Succeed())
			Expect(mgr.SetKey("gemini", "AIzaSyPrimary0001")).To(Succeed())

			entries, err := mgr.Entries()
			Expect(err).NotTo(HaveOccurred())
			Expect(entries).To(Equal([]credentials.Entry{
				{Provider: "gemini", EnvVar: "GEMINI_API_KEY", Masked: "AIza*********0001"},
				{Provider: "gemini-staging", Masked: "AIza*********0002"},
			}))
		})
	})
})

var _ = Describe("Mask", func() {
	It("keeps the first and last four characters", func() {
		Expect(credentials.Mask("AIzaSyABCDEF1234")).To(Equal("AIza********1234"))
	})

	It("fully masks short keys", func() {
		Expect(credentials.Mask("secret")).To(Equal("******"))
		Expect(credentials.Mask("")).To(BeEmpty())
	})
})

var _ = Describe("providers", func() {
	It("maps gemini to GEMINI_API_KEY", func() {
		Expect(credentials.EnvVarForProvider("gemini")).To(Equal("GEMINI_API_KEY"))
		Expect(credentials.EnvVarForProvider("ollama")).To(BeEmpty())
	})

	It("supports only providers that take a key", func() {
		Expect(credentials.SupportedProviders()).To(Equal([]string{"gemini"}))
		Expect(credentials.IsSupportedProvider("gemini")).To(BeTrue())
		Expect(credentials.IsSupportedProvider("ollama")).To(BeFalse())
		Expect(credentials.IsSupportedProvider("unknown")).To(BeFalse())
	})
})
