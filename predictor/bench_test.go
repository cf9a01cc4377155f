package predictor_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/ezoic/caloriedash/features"
	"github.com/ezoic/caloriedash/predictor"
)

func BenchmarkPredict(b *testing.B) {
	m, err := predictor.LoadModel(artifact, features.DefaultSchema())
	if err != nil {
		b.Fatal(err)
	}
	a, err := predictor.NewAdapter(m, nil)
	if err != nil {
		b.Fatal(err)
	}
	enc, err := features.NewEncoder(m.Schema())
	if err != nil {
		b.Fatal(err)
	}

	b.Run("Encode", func(b *testing.B) {
		b.ReportAllocs()
		in := features.DefaultInput()
		for i := 0; i < b.N; i++ {
			if _, err := enc.Encode(in); err != nil {
				b.Fatal(err)
			}
		}
	})

	b.Run("Predict", func(b *testing.B) {
		b.ReportAllocs()
		v, _ := enc.Encode(features.DefaultInput())
		for i := 0; i < b.N; i++ {
			if _, err := a.Predict(v); err != nil {
				b.Fatal(err)
			}
		}
	})

	for _, n := range []int{100, 10_000} {
		b.Run(fmt.Sprintf("EncodeBatch_%d", n), func(b *testing.B) {
			b.ReportAllocs()
			rng := rand.New(rand.NewSource(1))
			inputs := make([]features.Input, n)
			for i := range inputs {
				in := features.DefaultInput()
				in.Age = 10 + rng.Intn(71)
				in.SessionMinutes = float64(10 + 5*rng.Intn(59))
				in.WorkoutType = features.WorkoutTypes()[rng.Intn(4)]
				inputs[i] = in
			}
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := enc.EncodeBatch(inputs); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
