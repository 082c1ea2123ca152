package versioncmder_test

import (
	"bytes"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	versioncmder "github.com/papercomputeco/arenito/cmd/version"
	"github.com/papercomputeco/arenito/pkg/utils"
)

func TestVersionCmd(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Version Command Suite")
}

var _ = Describe("Version command", func() {
	It("prints the build metadata", func() {
		cmd := versioncmder.NewVersionCmd()
		out := &bytes.Buffer{}
		cmd.SetOut(out)
		cmd.SetArgs([]string{})

		Expect(cmd.Execute()).To(Succeed())
		Expect(out.String()).To(ContainSubstring("arenito " + utils.Version))
		Expect(out.String()).To(ContainSubstring("Sha: " + utils.Sha))
	})
})
