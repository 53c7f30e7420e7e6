package river_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestRiver(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "River Suite")
}
