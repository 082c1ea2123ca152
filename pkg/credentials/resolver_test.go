package credentials_test

import (
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/arenito/pkg/credentials"
)

var _ = Describe("Resolver", func() {
	var (
		mgr *credentials.Manager
		env map[string]string
	)

	getenv := func(key string) string { return env[key] }

	BeforeEach(func() {
		tmpDir, err := os.MkdirTemp("", "resolver-test-*")
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(func() { os.RemoveAll(tmpDir) })

		mgr, err = credentials.NewManager(tmpDir)
		Expect(err).NotTo(HaveOccurred())
		env = map[string]string{}
	})

	It("prefers the environment variable", func() {
		env["GEMINI_API_KEY"] = "from-env"
		Expect(mgr.SetKey("gemini", "from-file")).To(Succeed())

		key, err := credentials.NewResolver(mgr).WithEnv(getenv).Resolve("gemini")
		Expect(err).NotTo(HaveOccurred())
		Expect(key).To(Equal("from-env"))
	})

	It("falls back to stored credentials", func() {
		env["GEMINI_API_KEY"] = "   "
		Expect(mgr.SetKey("gemini", "from-file")).To(Succeed())

		key, err := credentials.NewResolver(mgr).WithEnv(getenv).Resolve("gemini")
		Expect(err).NotTo(HaveOccurred())
		Expect(key).To(Equal("from-file"))
	})

	It("returns empty when nothing is configured", func() {
		key, err := credentials.NewResolver(mgr).WithEnv(getenv).Resolve("gemini")
		Expect(err).NotTo(HaveOccurred())
		Expect(key).To(BeEmpty())
	})

	It("sees changes made after construction", func() {
		r := credentials.NewResolver(mgr).WithEnv(getenv)

		key, err := r.Resolve("gemini")
		Expect(err).NotTo(HaveOccurred())
		Expect(key).To(BeEmpty())

		env["GEMINI_API_KEY"] = "late"
		key, err = r.Resolve("gemini")
		Expect(err).NotTo(HaveOccurred())
		Expect(key).To(Equal("late"))
	})

	It("works without a manager", func() {
		env["GEMINI_API_KEY"] = "only-env"
		key, err := credentials.NewResolver(nil).WithEnv(getenv).Resolve("gemini")
		Expect(err).NotTo(HaveOccurred())
		Expect(key).To(Equal("only-env"))
	})
})
