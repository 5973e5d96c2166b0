package initcmder_test

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	initcmder "github.com/papercomputeco/trellis/cmd/trellis/init"
	"github.com/papercomputeco/trellis/pkg/config"
	"github.com/papercomputeco/trellis/pkg/rdf"
)

var _ = Describe("NewInitCmd", func() {
	It("creates a command with the correct use string", func() {
		cmd := initcmder.NewInitCmd()
		Expect(cmd.Use).To(Equal("init"))
	})

	It("accepts zero arguments", func() {
		cmd := initcmder.NewInitCmd()
		err := cmd.Args(cmd, []string{})
		Expect(err).NotTo(HaveOccurred())
	})

	It("rejects any arguments", func() {
		cmd := initcmder.NewInitCmd()
		err := cmd.Args(cmd, []string{"extra"})
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("Init command execution", func() {
	var (
		tmpDir  string
		origDir string
	)

	BeforeEach(func() {
		var err error
		tmpDir, err = os.MkdirTemp("", "trellis-init-test-*")
		Expect(err).NotTo(HaveOccurred())

		origDir, err = os.Getwd()
		Expect(err).NotTo(HaveOccurred())

		err = os.Chdir(tmpDir)
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		err := os.Chdir(origDir)
		Expect(err).NotTo(HaveOccurred())
		os.RemoveAll(tmpDir)
	})

	It("creates a .trellis directory in the current directory", func() {
		cmd := initcmder.NewInitCmd()
		cmd.SetArgs([]string{})
		err := cmd.Execute()
		Expect(err).NotTo(HaveOccurred())

		info, err := os.Stat(filepath.Join(tmpDir, ".trellis"))
		Expect(err).NotTo(HaveOccurred())
		Expect(info.IsDir()).To(BeTrue())
	})

	It("creates a config.toml with default values", func() {
		cmd := initcmder.NewInitCmd()
		cmd.SetArgs([]string{})
		err := cmd.Execute()
		Expect(err).NotTo(HaveOccurred())

		cfg := loadConfig(tmpDir)
		Expect(cfg.Version).To(Equal(config.CurrentV))
		Expect(cfg.Storage.Path).To(Equal(""))
		Expect(cfg.Namespace.Base).To(Equal(rdf.DefaultNamespace))
		Expect(cfg.API.Listen).To(Equal(":8081"))
	})

	It("succeeds when .trellis directory already exists", func() {
		err := os.MkdirAll(filepath.Join(tmpDir, ".trellis"), 0o755)
		Expect(err).NotTo(HaveOccurred())

		cmd := initcmder.NewInitCmd()
		cmd.SetArgs([]string{})
		err = cmd.Execute()
		Expect(err).NotTo(HaveOccurred())

		info, err := os.Stat(filepath.Join(tmpDir, ".trellis"))
		Expect(err).NotTo(HaveOccurred())
		Expect(info.IsDir()).To(BeTrue())
	})

	It("keeps an existing config.toml when stdin is not a terminal", func() {
		trellisDir := filepath.Join(tmpDir, ".trellis")
		err := os.MkdirAll(trellisDir, 0o755)
		Expect(err).NotTo(HaveOccurred())

		// Write a config with a non-default value
		existing := "version = 0\n\n[namespace]\nbase = \"http://example.org/keep/\"\n"
		configPath := filepath.Join(trellisDir, "config.toml")
		err = os.WriteFile(configPath, []byte(existing), 0o600)
		Expect(err).NotTo(HaveOccurred())

		cmd := initcmder.NewInitCmd()
		cmd.SetArgs([]string{})
		err = cmd.Execute()
		Expect(err).NotTo(HaveOccurred())

		cfg := loadConfig(tmpDir)
		Expect(cfg.Namespace.Base).To(Equal("http://example.org/keep/"))
	})

	It("does not disturb other files in an existing .trellis dir", func() {
		trellisDir := filepath.Join(tmpDir, ".trellis")
		err := os.MkdirAll(trellisDir, 0o755)
		Expect(err).NotTo(HaveOccurred())

		storeFile := filepath.Join(trellisDir, "graph.db")
		err = os.WriteFile(storeFile, []byte("quads"), 0o644)
		Expect(err).NotTo(HaveOccurred())

		cmd := initcmder.NewInitCmd()
		cmd.SetArgs([]string{})
		err = cmd.Execute()
		Expect(err).NotTo(HaveOccurred())

		data, err := os.ReadFile(storeFile)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(data)).To(Equal("quads"))
	})
})

// loadConfig is a test helper that reads and parses the config.toml from the
// .trellis directory within the given base directory.
func loadConfig(baseDir string) *config.Config {
	configPath := filepath.Join(baseDir, ".trellis", "config.toml")
	data, err := os.ReadFile(configPath)
	ExpectWithOffset(1, err).NotTo(HaveOccurred())

	cfg := &config.Config{}
	err = toml.Unmarshal(data, cfg)
	ExpectWithOffset(1, err).NotTo(HaveOccurred())
	return cfg
}
