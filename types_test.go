package bingopdf

import (
	"errors"
	"testing"
)

func TestGridShape_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		grid    GridShape
		wantErr error
	}{
		{name: "minimum 3x3", grid: GridShape{Rows: 3, Cols: 3}},
		{name: "maximum 5x5", grid: GridShape{Rows: 5, Cols: 5}},
		{name: "rectangular 3x5", grid: GridShape{Rows: 3, Cols: 5}},
		{name: "rows too small", grid: GridShape{Rows: 2, Cols: 3}, wantErr: ErrInvalidGrid},
		{name: "cols too small", grid: GridShape{Rows: 3, Cols: 2}, wantErr: ErrInvalidGrid},
		{name: "rows too large", grid: GridShape{Rows: 6, Cols: 5}, wantErr: ErrInvalidGrid},
		{name: "cols too large", grid: GridShape{Rows: 5, Cols: 6}, wantErr: ErrInvalidGrid},
		{name: "zero value", grid: GridShape{}, wantErr: ErrInvalidGrid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.grid.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestGridShape_Cells(t *testing.T) {
	t.Parallel()

	if got := (GridShape{Rows: 4, Cols: 5}).Cells(); got != 20 {
		t.Errorf("Cells() = %d, want 20", got)
	}
}
