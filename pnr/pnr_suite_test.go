package pnr_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestPnr(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "PnR Suite")
}
