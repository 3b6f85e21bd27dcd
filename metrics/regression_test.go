package metrics

import (
	"math"
	"testing"
)

func TestPearsonCorrelation(t *testing.T) {
	tests := []struct {
		name    string
		yTrue   []float64
		yPred   []float64
		want    float64
		wantErr bool
	}{
		{
			name:  "Perfect positive",
			yTrue: []float64{1, 2, 3, 4, 5},
			yPred: []float64{2, 4, 6, 8, 10},
			want:  1.0,
		},
		{
			name:  "Perfect negative",
			yTrue: []float64{1, 2, 3, 4, 5},
			yPred: []float64{10, 8, 6, 4, 2},
			want:  -1.0,
		},
		{
			name:  "Constant predictions are undefined, fall back to 0",
			yTrue: []float64{1, 2, 3, 4},
			yPred: []float64{3, 3, 3, 3},
			want:  0.0,
		},
		{
			name:    "Empty input",
			yTrue:   []float64{},
			yPred:   []float64{},
			wantErr: true,
		},
		{
			name:    "Single observation",
			yTrue:   []float64{1},
			yPred:   []float64{1},
			wantErr: true,
		},
		{
			name:    "Length mismatch",
			yTrue:   []float64{1, 2, 3},
			yPred:   []float64{1, 2},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PearsonCorrelation(tt.yTrue, tt.yPred)
			if (err != nil) != tt.wantErr {
				t.Fatalf("PearsonCorrelation() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("PearsonCorrelation() = %v, want %v", got, tt.want)
			}
			if got < -1 || got > 1 {
				t.Errorf("PearsonCorrelation() = %v, outside [-1, 1]", got)
			}
		})
	}
}

func TestMSE(t *testing.T) {
	tests := []struct {
		name    string
		yTrue   []float64
		yPred   []float64
		want    float64
		wantErr bool
	}{
		{
			name:  "Exact predictions",
			yTrue: []float64{1, 2, 3},
			yPred: []float64{1, 2, 3},
			want:  0,
		},
		{
			name:  "Uniform error of 1",
			yTrue: []float64{1, 2, 3, 4},
			yPred: []float64{2, 3, 4, 5},
			want:  1,
		},
		{
			name:    "Empty input",
			yTrue:   []float64{},
			yPred:   []float64{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MSE(tt.yTrue, tt.yPred)
			if (err != nil) != tt.wantErr {
				t.Fatalf("MSE() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("MSE() = %v, want %v", got, tt.want)
			}
		})
	}
}
