package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestContextFields(t *testing.T) {
	ctx := WithStage(WithItemID(context.Background(), 7), "transcribe")
	fields := ContextFields(ctx)
	if len(fields) != 2 {
		t.Fatalf("fields = %v", fields)
	}
	if fields[0].Key != FieldItemID || fields[0].Value.Int64() != 7 {
		t.Errorf("item field = %v", fields[0])
	}
	if fields[1].Key != FieldStage || fields[1].Value.String() != "transcribe" {
		t.Errorf("stage field = %v", fields[1])
	}
}

func TestContextFieldsEmpty(t *testing.T) {
	if fields := ContextFields(context.Background()); len(fields) != 0 {
		t.Errorf("fields = %v", fields)
	}
}

func TestWithContextNilLogger(t *testing.T) {
	logger := WithContext(context.Background(), nil)
	if logger == nil {
		t.Fatal("nil logger returned")
	}
	logger.Info("must not panic")
}

func TestWithContextAugments(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewTextHandler(&buf, nil))

	ctx := WithStage(WithItemID(context.Background(), 3), "extract")
	WithContext(ctx, base).Info("working")

	out := buf.String()
	if !strings.Contains(out, "item_id=3") || !strings.Contains(out, "stage=extract") {
		t.Errorf("context fields not attached: %s", out)
	}
}
