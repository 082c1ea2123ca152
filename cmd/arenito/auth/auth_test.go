package authcmder_test

import (
	"bytes"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spf13/cobra"

	authcmder "github.com/papercomputeco/arenito/cmd/arenito/auth"
	"github.com/papercomputeco/arenito/pkg/credentials"
)

func newAuthCmd() *cobra.Command {
	cmd := authcmder.NewAuthCmd()
	cmd.PersistentFlags().String("config-dir", "", "Override path to .arenito/ config directory")
	return cmd
}

var _ = Describe("Auth Command", func() {
	var tmpDir string

	BeforeEach(func() {
		var err error
		tmpDir, err = os.MkdirTemp("", "arenito-auth-test-*")
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		os.RemoveAll(tmpDir)
	})

	Describe("NewAuthCmd", func() {
		It("creates a command with expected properties", func() {
			cmd := authcmder.NewAuthCmd()
			Expect(cmd.Use).To(Equal("auth [provider]"))
			Expect(cmd.Short).NotTo(BeEmpty())
			Expect(cmd.Flags().Lookup("list")).NotTo(BeNil())
			Expect(cmd.Flags().Lookup("remove")).NotTo(BeNil())
		})
	})

	Describe("storing a key", func() {
		It("stores a piped key", func() {
			cmd := newAuthCmd()
			cmd.SetIn(bytes.NewBufferString("AIzaSyTest123\n"))
			cmd.SetArgs([]string{"gemini", "--config-dir", tmpDir})

			Expect(cmd.Execute()).To(Succeed())

			mgr, err := credentials.NewManager(tmpDir)
			Expect(err).NotTo(HaveOccurred())
			key, err := mgr.GetKey("gemini")
			Expect(err).NotTo(HaveOccurred())
			Expect(key).To(Equal("AIzaSyTest123"))
		})

		It("normalizes the provider name", func() {
			cmd := newAuthCmd()
			cmd.SetIn(bytes.NewBufferString("  AIzaSyTest123  \n"))
			cmd.SetArgs([]string{" Gemini ", "--config-dir", tmpDir})

			Expect(cmd.Execute()).To(Succeed())

			mgr, err := credentials.NewManager(tmpDir)
			Expect(err).NotTo(HaveOccurred())
			key, err := mgr.GetKey("gemini")
			Expect(err).NotTo(HaveOccurred())
			Expect(key).To(Equal("AIzaSyTest123"))
		})

		It("rejects an empty key", func() {
			cmd := newAuthCmd()
			cmd.SetIn(bytes.NewBufferString("   \n"))
			cmd.SetArgs([]string{"gemini", "--config-dir", tmpDir})

			err := cmd.Execute()
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("cannot be empty"))
		})

		It("errors when nothing is piped", func() {
			cmd := newAuthCmd()
			cmd.SetIn(&bytes.Buffer{})
			cmd.SetArgs([]string{"gemini", "--config-dir", tmpDir})

			err := cmd.Execute()
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("no input"))
		})
	})

	Describe("--list flag", func() {
		It("shows no credentials when none stored", func() {
			cmd := newAuthCmd()
			cmd.SetArgs([]string{"--list", "--config-dir", tmpDir})

			Expect(cmd.Execute()).To(Succeed())
		})

		It("lists stored credentials", func() {
			mgr, err := credentials.NewManager(tmpDir)
			Expect(err).NotTo(HaveOccurred())
			Expect(mgr.SetKey("gemini", "AIzaSyTest123")).To(Succeed())

			cmd := newAuthCmd()
			cmd.SetArgs([]string{"--list", "--config-dir", tmpDir})

			Expect(cmd.Execute()).To(Succeed())
		})
	})

	Describe("--remove flag", func() {
		It("removes stored credentials", func() {
			mgr, err := credentials.NewManager(tmpDir)
			Expect(err).NotTo(HaveOccurred())
			Expect(mgr.SetKey("gemini", "AIzaSyTest123")).To(Succeed())

			cmd := newAuthCmd()
			cmd.SetArgs([]string{"--remove", "gemini", "--config-dir", tmpDir})

			Expect(cmd.Execute()).To(Succeed())

			key, err := mgr.GetKey("gemini")
			Expect(err).NotTo(HaveOccurred())
			Expect(key).To(BeEmpty())
		})
	})

	Describe("provider argument validation", func() {
		It("returns error when no provider given", func() {
			cmd := newAuthCmd()
			cmd.SetArgs([]string{})

			err := cmd.Execute()
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("provider argument required"))
		})

		It("returns error for unsupported provider", func() {
			cmd := newAuthCmd()
			cmd.SetIn(bytes.NewBufferString("secret\n"))
			cmd.SetArgs([]string{"ollama", "--config-dir", tmpDir})

			err := cmd.Execute()
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("unsupported provider"))
		})
	})

	Describe("shell completion", func() {
		It("provides provider name completions", func() {
			cmd := authcmder.NewAuthCmd()
			completions, directive := cmd.ValidArgsFunction(cmd, []string{}, "")
			Expect(completions).To(ConsistOf("gemini"))
			Expect(directive).To(Equal(cobra.ShellCompDirectiveNoFileComp))
		})

		It("provides no completions after first arg", func() {
			cmd := authcmder.NewAuthCmd()
			completions, directive := cmd.ValidArgsFunction(cmd, []string{"gemini"}, "")
			Expect(completions).To(BeNil())
			Expect(directive).To(Equal(cobra.ShellCompDirectiveNoFileComp))
		})
	})
})
