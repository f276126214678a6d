package cmd

import (
	"bytes"
	"errors"
	"io/ioutil"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/tinyzimmer/usersu/pkg/archive"
	"github.com/tinyzimmer/usersu/pkg/cache"
	"github.com/tinyzimmer/usersu/pkg/types"
)

const usudScript = `#!/bin/sh
if [ "$1" = "fail" ]; then
  echo "failing on purpose"
  exit 4
fi
echo "usud 1.2.3 $1"
`

func execute(args ...string) (string, error) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

var _ = Describe("The usersu command", func() {
	var (
		tmpDir  string
		root    string
		tarball string
	)

	BeforeEach(func() {
		var err error
		tmpDir, err = ioutil.TempDir("", "")
		Expect(err).ToNot(HaveOccurred())
		root = filepath.Join(tmpDir, "sandbox")
		tarball = filepath.Join(tmpDir, "usersu.tar.gz")

		data, err := archive.MockTarball(types.CompressionGzip,
			archive.MockEntry{Name: "bin/usud", Body: usudScript},
			archive.MockEntry{Name: "lib/libfakeroot.so", Body: "ELF"},
			archive.MockEntry{Name: "README.md", Body: "not installed"},
		)
		Expect(err).ToNot(HaveOccurred())
		Expect(ioutil.WriteFile(tarball, data, 0644)).To(Succeed())

		infoOutput, infoTemplate = "text", ""
		runTimeout = 0
		cache.NoCache = false
	})

	AfterEach(func() { os.RemoveAll(tmpDir) })

	sandboxArgs := func(args ...string) []string {
		return append([]string{"--root", root, "--policy", "tree"}, args...)
	}

	It("Should install, run, report on and uninstall a sandbox", func() {
		out, err := execute(sandboxArgs("install", tarball)...)
		Expect(err).ToNot(HaveOccurred())
		Expect(out).To(Equal("Extracted 2 files successfully to " + root + "\n"))

		out, err = execute(sandboxArgs("run", "--", "--version")...)
		Expect(err).ToNot(HaveOccurred())
		Expect(out).To(Equal("usud 1.2.3 --version\n"))

		out, err = execute(sandboxArgs("info")...)
		Expect(err).ToNot(HaveOccurred())
		Expect(out).To(ContainSubstring("Version:         usud 1.2.3 --version\n"))
		Expect(out).To(ContainSubstring("Helper Library:  " + filepath.Join(root, "lib", "libfakeroot.so") + " (Found)\n"))

		out, err = execute(sandboxArgs("info", "--output", "yaml")...)
		Expect(err).ToNot(HaveOccurred())
		Expect(out).To(ContainSubstring("policy: tree\n"))
		Expect(out).To(ContainSubstring("executableReady: true\n"))

		out, err = execute(sandboxArgs("uninstall")...)
		Expect(err).ToNot(HaveOccurred())
		Expect(out).To(Equal("UserSU uninstalled successfully.\n"))
		Expect(root).ToNot(BeAnExistingFile())

		out, err = execute(sandboxArgs("uninstall")...)
		Expect(err).ToNot(HaveOccurred())
		Expect(out).To(Equal("UserSU not found for uninstallation.\n"))
	})

	It("Should render info with a user template", func() {
		out, err := execute(sandboxArgs("info", "--template", `{{ .Policy | toString | upper }} {{ .HelperLibraryFound }}`)...)
		Expect(err).ToNot(HaveOccurred())
		Expect(out).To(Equal("TREE false"))
	})

	It("Should report a missing helper library", func() {
		out, err := execute(sandboxArgs("info")...)
		Expect(err).ToNot(HaveOccurred())
		Expect(out).To(ContainSubstring("(Not Found)"))
		Expect(out).To(ContainSubstring("(not installed)"))
		Expect(out).To(ContainSubstring("Version:         Unknown\n"))
	})

	It("Should exit with the code of usud", func() {
		_, err := execute(sandboxArgs("install", tarball)...)
		Expect(err).ToNot(HaveOccurred())

		out, err := execute(sandboxArgs("run", "fail")...)
		Expect(out).To(Equal("failing on purpose\n"))
		code, reported := ExitCode(err)
		Expect(code).To(Equal(4))
		Expect(reported).To(BeTrue())
	})

	It("Should refuse to run an empty sandbox", func() {
		out, err := execute(sandboxArgs("run", "id")...)
		Expect(out).To(Equal("Error: usud binary not found or not executable at " + filepath.Join(root, "bin", "usud") + "\n"))
		code, reported := ExitCode(err)
		Expect(code).To(Equal(1))
		Expect(reported).To(BeTrue())
	})

	It("Should print the failure of an unsupported archive", func() {
		Expect(ioutil.WriteFile(tarball, []byte("plain text"), 0644)).To(Succeed())
		out, err := execute(sandboxArgs("install", tarball)...)
		Expect(out).To(Equal("Installation failed: unsupported archive format\n"))
		_, reported := ExitCode(err)
		Expect(reported).To(BeTrue())
	})

	It("Should return unreported errors for a missing archive", func() {
		_, err := execute(sandboxArgs("install", filepath.Join(tmpDir, "missing.tar.gz"))...)
		Expect(err).To(HaveOccurred())
		code, reported := ExitCode(err)
		Expect(code).To(Equal(1))
		Expect(reported).To(BeFalse())
	})

	It("Should reject an unknown policy", func() {
		_, err := execute("--root", root, "--policy", "nested", "info")
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring(`unknown install policy "nested"`))
	})
})

var _ = Describe("ExitCode", func() {
	It("Should treat plain errors as unreported failures", func() {
		code, reported := ExitCode(errors.New("boom"))
		Expect(code).To(Equal(1))
		Expect(reported).To(BeFalse())
	})
})
