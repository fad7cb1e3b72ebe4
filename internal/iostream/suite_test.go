package iostream_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestIostream(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "IOStream Suite")
}
