package sandbox

import (
	"io/ioutil"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/tinyzimmer/usersu/pkg/types"
)

func writeFiles(root string, files ...string) {
	for _, f := range files {
		p := filepath.Join(root, filepath.FromSlash(f))
		Expect(os.MkdirAll(filepath.Dir(p), 0755)).To(Succeed())
		Expect(ioutil.WriteFile(p, []byte(f), 0644)).To(Succeed())
	}
}

var _ = Describe("Uninstalling a sandbox", func() {
	var (
		tmpDir  string
		root    string
		policy  Policy
		outcome *types.UninstallOutcome
	)

	BeforeEach(func() {
		var err error
		tmpDir, err = ioutil.TempDir("", "")
		Expect(err).ToNot(HaveOccurred())
		root = filepath.Join(tmpDir, "sandbox")
	})

	AfterEach(func() {
		// restore permissions a test may have revoked so cleanup succeeds
		filepath.Walk(tmpDir, func(p string, info os.FileInfo, err error) error {
			if err == nil && info.IsDir() {
				os.Chmod(p, 0755)
			}
			return nil
		})
		os.RemoveAll(tmpDir)
	})

	JustBeforeEach(func() {
		outcome = NewUninstaller(policy).Uninstall(root)
	})

	Context("When the sandbox was never created", func() {
		BeforeEach(func() { policy = Tree })
		It("Should report that there was nothing to remove", func() {
			Expect(outcome.Success()).To(BeTrue())
			Expect(outcome.Result).To(Equal(types.UninstallNothingToRemove))
			Expect(outcome.String()).To(Equal("UserSU not found for uninstallation."))
		})
	})

	Context("When a tree sandbox is installed", func() {
		BeforeEach(func() {
			policy = Tree
			writeFiles(root, "bin/usud", "bin/tool", "lib/x.so", "rootfs/etc/motd", "rootfs/usr/share/doc/a", "keep.txt")
		})
		It("Should remove every managed subdirectory", func() {
			Expect(outcome.Success()).To(BeTrue())
			Expect(outcome.Result).To(Equal(types.UninstallRemoved))
			for _, dir := range []string{"bin", "lib", "rootfs"} {
				_, err := os.Stat(filepath.Join(root, dir))
				Expect(os.IsNotExist(err)).To(BeTrue())
			}
			// 5 files and 7 directories
			Expect(outcome.Removed).To(Equal(12))
		})
		It("Should leave unmanaged files alone", func() {
			Expect(filepath.Join(root, "keep.txt")).To(BeARegularFile())
		})
	})

	Context("When only part of a tree sandbox exists", func() {
		BeforeEach(func() {
			policy = Tree
			writeFiles(root, "lib/x.so")
		})
		It("Should remove what is there and the emptied root", func() {
			Expect(outcome.Result).To(Equal(types.UninstallRemoved))
			// the file, lib and the root
			Expect(outcome.Removed).To(Equal(3))
			_, err := os.Stat(root)
			Expect(os.IsNotExist(err)).To(BeTrue())
		})
	})

	Context("When a flat sandbox is installed", func() {
		BeforeEach(func() {
			policy = Flat
			writeFiles(root, "usud", "libfakeroot.so")
		})
		It("Should remove the sandbox directory", func() {
			Expect(outcome.Result).To(Equal(types.UninstallRemoved))
			Expect(outcome.Removed).To(Equal(3))
			_, err := os.Stat(root)
			Expect(os.IsNotExist(err)).To(BeTrue())
		})
	})

	Context("When a flat sandbox shares its directory with other files", func() {
		BeforeEach(func() {
			policy = Flat
			writeFiles(root, "usud", "my-thesis.tex", "photos/a.jpg")
		})
		It("Should only remove what the policy installs", func() {
			Expect(outcome.Result).To(Equal(types.UninstallRemoved))
			Expect(outcome.Removed).To(Equal(1))
			Expect(filepath.Join(root, "usud")).ToNot(BeAnExistingFile())
			Expect(filepath.Join(root, "my-thesis.tex")).To(BeARegularFile())
			Expect(filepath.Join(root, "photos", "a.jpg")).To(BeARegularFile())
		})
	})

	Context("When a flat root holds only unrelated files", func() {
		BeforeEach(func() {
			policy = Flat
			writeFiles(root, "notes.txt")
		})
		It("Should report nothing to remove and touch nothing", func() {
			Expect(outcome.Result).To(Equal(types.UninstallNothingToRemove))
			Expect(filepath.Join(root, "notes.txt")).To(BeARegularFile())
		})
	})

	Context("When the sandbox contains a symlink out of it", func() {
		var outside string
		BeforeEach(func() {
			policy = Tree
			outside = filepath.Join(tmpDir, "outside")
			writeFiles(tmpDir, "outside/precious")
			writeFiles(root, "rootfs/etc/motd")
			Expect(os.Symlink(outside, filepath.Join(root, "rootfs", "link"))).To(Succeed())
		})
		It("Should remove the link without following it", func() {
			Expect(outcome.Result).To(Equal(types.UninstallRemoved))
			Expect(filepath.Join(outside, "precious")).To(BeARegularFile())
		})
	})

	Context("When a file cannot be removed", func() {
		BeforeEach(func() {
			if os.Geteuid() == 0 {
				Skip("permissions are not enforced for root")
			}
			policy = Tree
			writeFiles(root, "bin/usud", "lib/locked/x.so")
			Expect(os.Chmod(filepath.Join(root, "lib", "locked"), 0555)).To(Succeed())
		})
		It("Should report a failure and still remove everything else", func() {
			Expect(outcome.Success()).To(BeFalse())
			Expect(outcome.Result).To(Equal(types.UninstallFailed))
			Expect(types.IsKind(outcome.Err, types.IOError)).To(BeTrue())
			Expect(outcome.String()).To(HavePrefix("Uninstallation failed:"))
			_, err := os.Stat(filepath.Join(root, "bin"))
			Expect(os.IsNotExist(err)).To(BeTrue())
			Expect(filepath.Join(root, "lib", "locked", "x.so")).To(BeARegularFile())
		})
	})
})
