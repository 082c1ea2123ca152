package configcmder_test

import (
	"bytes"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	configcmder "github.com/papercomputeco/arenito/cmd/arenito/config"
	"github.com/papercomputeco/arenito/pkg/config"
)

var _ = Describe("NewConfigCmd", func() {
	It("creates a command with the correct use string", func() {
		cmd := configcmder.NewConfigCmd()
		Expect(cmd.Use).To(Equal("config"))
	})

	It("has set, get, and list subcommands", func() {
		cmd := configcmder.NewConfigCmd()
		cmds := cmd.Commands()
		subcommands := make([]string, 0, len(cmds))
		for _, sub := range cmds {
			subcommands = append(subcommands, sub.Name())
		}
		Expect(subcommands).To(ContainElements("set", "get", "list"))
	})
})

var _ = Describe("Config command execution", func() {
	var (
		tmpDir  string
		origDir string
	)

	BeforeEach(func() {
		var err error
		tmpDir, err = os.MkdirTemp("", "arenito-config-test-*")
		Expect(err).NotTo(HaveOccurred())

		origDir, err = os.Getwd()
		Expect(err).NotTo(HaveOccurred())

		// A local .arenito dir makes the manager pick tmpDir over $HOME.
		err = os.MkdirAll(filepath.Join(tmpDir, ".arenito"), 0o755)
		Expect(err).NotTo(HaveOccurred())

		err = os.Chdir(tmpDir)
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		err := os.Chdir(origDir)
		Expect(err).NotTo(HaveOccurred())
		os.RemoveAll(tmpDir)
	})

	loadConfig := func() *config.Config {
		cfger, err := config.NewConfiger(filepath.Join(tmpDir, ".arenito"))
		Expect(err).NotTo(HaveOccurred())
		cfg, err := cfger.LoadConfig()
		Expect(err).NotTo(HaveOccurred())
		return cfg
	}

	Describe("set subcommand", func() {
		It("sets a config value successfully", func() {
			cmd := configcmder.NewConfigCmd()
			cmd.SetArgs([]string{"set", "provider.name", "ollama"})
			Expect(cmd.Execute()).To(Succeed())

			_, err := os.Stat(filepath.Join(tmpDir, ".arenito", "config.toml"))
			Expect(err).NotTo(HaveOccurred())
			Expect(loadConfig().Provider.Name).To(Equal("ollama"))
		})

		It("keeps other values at their defaults", func() {
			cmd := configcmder.NewConfigCmd()
			cmd.SetArgs([]string{"set", "conversation.window", "12"})
			Expect(cmd.Execute()).To(Succeed())

			cfg := loadConfig()
			Expect(cfg.Conversation.Window).To(Equal(12))
			Expect(cfg.Server.Listen).To(Equal(":8000"))
			Expect(*cfg.Generation.TopK).To(Equal(40))
		})

		It("rejects unknown keys", func() {
			cmd := configcmder.NewConfigCmd()
			cmd.SetArgs([]string{"set", "invalid_key", "value"})
			Expect(cmd.Execute()).NotTo(Succeed())
		})

		It("requires exactly two arguments", func() {
			cmd := configcmder.NewConfigCmd()
			cmd.SetArgs([]string{"set", "provider.name"})
			Expect(cmd.Execute()).NotTo(Succeed())
		})

		It("rejects zero arguments", func() {
			cmd := configcmder.NewConfigCmd()
			cmd.SetArgs([]string{"set"})
			Expect(cmd.Execute()).NotTo(Succeed())
		})

		It("rejects invalid numeric values", func() {
			cmd := configcmder.NewConfigCmd()
			cmd.SetArgs([]string{"set", "conversation.window", "not-a-number"})
			Expect(cmd.Execute()).NotTo(Succeed())
		})

		It("rejects invalid durations", func() {
			cmd := configcmder.NewConfigCmd()
			cmd.SetArgs([]string{"set", "provider.timeout", "soon"})
			Expect(cmd.Execute()).NotTo(Succeed())
		})
	})

	Describe("get subcommand", func() {
		It("gets a previously set value", func() {
			setCmd := configcmder.NewConfigCmd()
			setCmd.SetArgs([]string{"set", "provider.model", "gemini-1.5-pro"})
			Expect(setCmd.Execute()).To(Succeed())

			var out bytes.Buffer
			getCmd := configcmder.NewConfigCmd()
			getCmd.SetOut(&out)
			getCmd.SetArgs([]string{"get", "provider.model"})
			Expect(getCmd.Execute()).To(Succeed())
			Expect(out.String()).To(ContainSubstring("gemini-1.5-pro"))
			Expect(out.String()).NotTo(ContainSubstring("(default)"))
		})

		It("prints several keys and marks defaults", func() {
			var out bytes.Buffer
			getCmd := configcmder.NewConfigCmd()
			getCmd.SetOut(&out)
			getCmd.SetArgs([]string{"get", "server.listen", "instruction.path"})
			Expect(getCmd.Execute()).To(Succeed())

			Expect(out.String()).To(ContainSubstring(":8000"))
			Expect(out.String()).To(ContainSubstring("(default)"))
			Expect(out.String()).To(ContainSubstring("<not set>"))
		})

		It("prints nothing when any key is unknown", func() {
			var out bytes.Buffer
			getCmd := configcmder.NewConfigCmd()
			getCmd.SetOut(&out)
			getCmd.SetArgs([]string{"get", "server.listen", "invalid_key"})
			Expect(getCmd.Execute()).NotTo(Succeed())
			Expect(out.String()).NotTo(ContainSubstring(":8000"))
		})

		It("rejects unknown keys", func() {
			cmd := configcmder.NewConfigCmd()
			cmd.SetArgs([]string{"get", "invalid_key"})
			Expect(cmd.Execute()).NotTo(Succeed())
		})

		It("requires at least one key", func() {
			cmd := configcmder.NewConfigCmd()
			cmd.SetArgs([]string{"get"})
			Expect(cmd.Execute()).NotTo(Succeed())
		})

		It("completes config keys", func() {
			cmd := configcmder.NewConfigCmd()
			get, _, err := cmd.Find([]string{"get"})
			Expect(err).NotTo(HaveOccurred())

			completions, _ := get.ValidArgsFunction(get, []string{}, "")
			Expect(completions).To(Equal(config.ValidConfigKeys()))

			completions, _ = get.ValidArgsFunction(get, []string{"server.listen"}, "")
			Expect(completions).NotTo(ContainElement("server.listen"))
			Expect(completions).To(HaveLen(len(config.ValidConfigKeys()) - 1))
		})
	})

	Describe("list subcommand", func() {
		It("runs without error when no config exists", func() {
			cmd := configcmder.NewConfigCmd()
			cmd.SetArgs([]string{"list"})
			Expect(cmd.Execute()).To(Succeed())
		})

		It("runs without error when config has values", func() {
			setCmd := configcmder.NewConfigCmd()
			setCmd.SetArgs([]string{"set", "provider.name", "ollama"})
			Expect(setCmd.Execute()).To(Succeed())

			cmd := configcmder.NewConfigCmd()
			cmd.SetArgs([]string{"list"})
			Expect(cmd.Execute()).To(Succeed())
		})

		It("rejects any arguments", func() {
			cmd := configcmder.NewConfigCmd()
			cmd.SetArgs([]string{"list", "extra"})
			Expect(cmd.Execute()).NotTo(Succeed())
		})
	})
})
