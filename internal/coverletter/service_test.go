package coverletter

import (
	"context"
	"errors"
	"strings"
	"testing"

	"coverletter-backend/internal/shared/metrics"
)

func TestServiceGenerateRecordsFailedStage(t *testing.T) {
	gen := &fakeGenerator{out: []byte("%PDF")}
	svc := &Service{
		Resolver: &Resolver{Extractor: &fakeExtractor{}, Completer: &fakeCompleter{}},
		Renderer: DefaultRenderer(),
		PDF:      gen,
	}

	_, err := svc.Generate(context.Background(), Submission{Content: ManualContent{Body: "x"}})
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Field != "name" {
		t.Fatalf("expected name validation error, got %v", err)
	}
	if !strings.Contains(metrics.Render(), `coverletter_generation_failed_total{stage="validate"}`) {
		t.Fatalf("expected failure counted under the validate stage")
	}
	if gen.calls != 0 {
		t.Fatalf("validation failure must not reach the PDF generator")
	}
}
