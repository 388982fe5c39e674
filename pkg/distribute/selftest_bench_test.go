package distribute_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"punzip/pkg/archive"
	"punzip/pkg/archive/selftest"
	"punzip/pkg/distribute"
)

func skewedSpecs(n int) []selftest.Spec {
	specs := make([]selftest.Spec, n)
	for i := range specs {
		size := 1024
		if i%10 == 0 {
			size = 512 * 1024 // one large outlier per ten entries
		}
		specs[i] = selftest.Spec{Name: fmt.Sprintf("file-%04d.bin", i), Size: size}
	}
	return specs
}

func BenchmarkBytesStrategyOnSkewedCorpus(b *testing.B) {
	data, err := selftest.Build(skewedSpecs(200))
	require.NoError(b, err)
	av, err := archive.Open(data)
	require.NoError(b, err)

	strat, err := distribute.Lookup("bytes")
	require.NoError(b, err)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := strat(8, av.Entries()); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkRuntimeStrategyOnSkewedCorpus(b *testing.B) {
	data, err := selftest.Build(skewedSpecs(200))
	require.NoError(b, err)
	av, err := archive.Open(data)
	require.NoError(b, err)

	strat, err := distribute.Lookup("runtime")
	require.NoError(b, err)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := strat(8, av.Entries()); err != nil {
			b.Fatal(err)
		}
	}
}
