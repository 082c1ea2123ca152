package initcmder_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	initcmder "github.com/papercomputeco/arenito/cmd/arenito/init"
	"github.com/papercomputeco/arenito/pkg/config"
)

var _ = Describe("NewInitCmd", func() {
	It("creates a command with the correct use string", func() {
		cmd := initcmder.NewInitCmd()
		Expect(cmd.Use).To(Equal("init"))
	})

	It("rejects any arguments", func() {
		cmd := initcmder.NewInitCmd()
		Expect(cmd.Args(cmd, []string{})).To(Succeed())
		Expect(cmd.Args(cmd, []string{"extra"})).NotTo(Succeed())
	})

	It("has a --preset flag", func() {
		cmd := initcmder.NewInitCmd()
		f := cmd.Flags().Lookup("preset")
		Expect(f).NotTo(BeNil())
		Expect(f.DefValue).To(Equal(""))
	})
})

var _ = Describe("Init command execution", func() {
	var (
		tmpDir  string
		origDir string
	)

	BeforeEach(func() {
		var err error
		tmpDir, err = os.MkdirTemp("", "arenito-init-test-*")
		Expect(err).NotTo(HaveOccurred())

		origDir, err = os.Getwd()
		Expect(err).NotTo(HaveOccurred())

		Expect(os.Chdir(tmpDir)).To(Succeed())
	})

	AfterEach(func() {
		Expect(os.Chdir(origDir)).To(Succeed())
		os.RemoveAll(tmpDir)
	})

	It("creates a .arenito directory with a default config.toml", func() {
		cmd := initcmder.NewInitCmd()
		cmd.SetArgs([]string{})
		Expect(cmd.Execute()).To(Succeed())

		info, err := os.Stat(filepath.Join(tmpDir, ".arenito"))
		Expect(err).NotTo(HaveOccurred())
		Expect(info.IsDir()).To(BeTrue())

		cfg := loadConfig(tmpDir)
		Expect(cfg.Version).To(Equal(config.CurrentV))
		Expect(cfg.Server.Listen).To(Equal(":8000"))
		Expect(cfg.Provider.Name).To(Equal("gemini"))
		Expect(cfg.Conversation.Window).To(Equal(40))
	})

	It("does not overwrite an existing config without --preset", func() {
		dir := filepath.Join(tmpDir, ".arenito")
		Expect(os.MkdirAll(dir, 0o755)).To(Succeed())
		Expect(os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[server]\nlisten = \":9999\"\n"), 0o600)).To(Succeed())
		Expect(os.WriteFile(filepath.Join(dir, "transcript.json"), []byte(`{"turns":[]}`), 0o600)).To(Succeed())

		cmd := initcmder.NewInitCmd()
		cmd.SetArgs([]string{})
		Expect(cmd.Execute()).To(Succeed())

		Expect(loadConfig(tmpDir).Server.Listen).To(Equal(":9999"))
		data, err := os.ReadFile(filepath.Join(dir, "transcript.json"))
		Expect(err).NotTo(HaveOccurred())
		Expect(string(data)).To(Equal(`{"turns":[]}`))
	})

	Describe("--preset with provider presets", func() {
		It("creates config.toml with the ollama preset", func() {
			cmd := initcmder.NewInitCmd()
			cmd.SetArgs([]string{"--preset", "ollama"})
			Expect(cmd.Execute()).To(Succeed())

			cfg := loadConfig(tmpDir)
			Expect(cfg.Provider.Name).To(Equal("ollama"))
			Expect(cfg.Provider.Model).To(Equal("llama3.2"))
			Expect(cfg.Provider.BaseURL).To(Equal("http://localhost:11434"))
			Expect(cfg.Provider.Timeout).To(Equal("2m"))
		})

		It("overwrites the config when re-run with another preset", func() {
			cmd1 := initcmder.NewInitCmd()
			cmd1.SetArgs([]string{"--preset", "ollama"})
			Expect(cmd1.Execute()).To(Succeed())
			Expect(loadConfig(tmpDir).Provider.Name).To(Equal("ollama"))

			cmd2 := initcmder.NewInitCmd()
			cmd2.SetArgs([]string{"--preset", "gemini"})
			Expect(cmd2.Execute()).To(Succeed())
			Expect(loadConfig(tmpDir).Provider.Name).To(Equal("gemini"))
		})

		It("rejects unknown preset names without creating the directory", func() {
			cmd := initcmder.NewInitCmd()
			cmd.SetArgs([]string{"--preset", "openai"})
			err := cmd.Execute()
			Expect(err).To(MatchError(ContainSubstring("unknown preset")))

			_, err = os.Stat(filepath.Join(tmpDir, ".arenito"))
			Expect(os.IsNotExist(err)).To(BeTrue())
		})
	})

	Describe("--preset with remote URL", func() {
		It("fetches and writes a remote config.toml", func() {
			remoteCfg := `version = 0

[provider]
name = "ollama"
model = "qwen2.5"
base_url = "http://ollama.internal:11434"

[conversation]
window = 16
`
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "text/plain")
				fmt.Fprint(w, remoteCfg)
			}))
			defer server.Close()

			cmd := initcmder.NewInitCmd()
			cmd.SetArgs([]string{"--preset", server.URL})
			Expect(cmd.Execute()).To(Succeed())

			cfg := loadConfig(tmpDir)
			Expect(cfg.Provider.Name).To(Equal("ollama"))
			Expect(cfg.Provider.Model).To(Equal("qwen2.5"))
			Expect(cfg.Provider.BaseURL).To(Equal("http://ollama.internal:11434"))
			Expect(cfg.Conversation.Window).To(Equal(16))
		})

		It("returns error for non-200 HTTP response", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			}))
			defer server.Close()

			cmd := initcmder.NewInitCmd()
			cmd.SetArgs([]string{"--preset", server.URL})
			Expect(cmd.Execute()).To(MatchError(ContainSubstring("HTTP 404")))
		})

		It("returns error for invalid TOML from URL", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				fmt.Fprint(w, "this is not valid toml [[[")
			}))
			defer server.Close()

			cmd := initcmder.NewInitCmd()
			cmd.SetArgs([]string{"--preset", server.URL})
			Expect(cmd.Execute()).To(MatchError(ContainSubstring("parsing")))
		})

		It("returns error for unreachable URL", func() {
			cmd := initcmder.NewInitCmd()
			cmd.SetArgs([]string{"--preset", "http://127.0.0.1:1"})
			Expect(cmd.Execute()).To(MatchError(ContainSubstring("fetching remote config")))
		})
	})
})

// loadConfig reads and parses config.toml from the .arenito directory within
// baseDir.
func loadConfig(baseDir string) *config.Config {
	data, err := os.ReadFile(filepath.Join(baseDir, ".arenito", "config.toml"))
	ExpectWithOffset(1, err).NotTo(HaveOccurred())

	cfg := &config.Config{}
	ExpectWithOffset(1, toml.Unmarshal(data, cfg)).To(Succeed())
	return cfg
}
