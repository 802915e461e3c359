// Copyright 2025 Stax ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package data_test

import (
	"testing"

	"github.com/stax-ml/stax/data"
)

// TestPublicAPI checks the exported surface against the internal
// implementation: cast, convert, infer.
func TestPublicAPI(t *testing.T) {
	d, err := data.Cast([]float64{1, 2, 3, 4, 5, 6}, data.Shape{2, 3})
	if err != nil {
		t.Fatalf("Cast() error: %v", err)
	}
	if !d.Shape().Equal(data.Shape{2, 3}) {
		t.Errorf("Cast() shape = %v, want {2, 3}", d.Shape())
	}

	v, err := data.Convert(d, data.Shape{data.Wild, 2})
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}
	if !v.Shape().Equal(data.Shape{3, 2}) {
		t.Errorf("Convert() shape = %v, want {3, 2}", v.Shape())
	}

	inferred, err := data.Infer([]float64{1, 2, 3})
	if err != nil {
		t.Fatalf("Infer() error: %v", err)
	}
	if _, ok := inferred.(*data.List); !ok {
		t.Errorf("Infer() = %T, want *data.List", inferred)
	}

	if _, err := data.Cast([]float64{1, 2}, nil); err == nil {
		t.Error("Cast(nil shape) should fail")
	}
}
