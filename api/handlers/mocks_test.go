package handlers

import (
	"context"
	"sync"

	"textforge-api/core/convert"
	"textforge-api/core/domain"
	"textforge-api/core/tree"
	"textforge-api/core/workbench"
)

// mockWorkbenchService is a mock implementation of the workbench service.
// Unset funcs return zero values.
type mockWorkbenchService struct {
	formatFunc             func(ctx context.Context, content string, kind domain.FormatKind, withTree bool) (*workbench.FormatResult, error)
	formatBatchFunc        func(ctx context.Context, items []workbench.BatchItem) ([]workbench.BatchResult, error)
	previewMarkdownFunc    func(ctx context.Context, content string) (string, error)
	validateJSONSchemaFunc func(ctx context.Context, content, schema string) (*domain.Report, error)
	validateXSDFunc        func(ctx context.Context, content, schema string) (*domain.Report, error)
	lintYAMLFunc           func(ctx context.Context, content string) (*domain.Report, error)
	treeFunc               func(ctx context.Context, content string, kind domain.FormatKind) (*tree.Result, error)
	diffFunc               func(ctx context.Context, req workbench.DiffRequest) (*workbench.DiffResult, error)
	convertFunc            func(ctx context.Context, content, from, to string, opts convert.Options) (*convert.Result, error)
}

func (m *mockWorkbenchService) Format(ctx context.Context, content string, kind domain.FormatKind, withTree bool) (*workbench.FormatResult, error) {
	if m.formatFunc != nil {
		return m.formatFunc(ctx, content, kind, withTree)
	}
	return &workbench.FormatResult{}, nil
}

func (m *mockWorkbenchService) FormatBatch(ctx context.Context, items []workbench.BatchItem) ([]workbench.BatchResult, error) {
	if m.formatBatchFunc != nil {
		return m.formatBatchFunc(ctx, items)
	}
	return nil, nil
}

func (m *mockWorkbenchService) PreviewMarkdown(ctx context.Context, content string) (string, error) {
	if m.previewMarkdownFunc != nil {
		return m.previewMarkdownFunc(ctx, content)
	}
	return "", nil
}

func (m *mockWorkbenchService) ValidateJSONSchema(ctx context.Context, content, schema string) (*domain.Report, error) {
	if m.validateJSONSchemaFunc != nil {
		return m.validateJSONSchemaFunc(ctx, content, schema)
	}
	return domain.PassReport(""), nil
}

func (m *mockWorkbenchService) ValidateXSD(ctx context.Context, content, schema string) (*domain.Report, error) {
	if m.validateXSDFunc != nil {
		return m.validateXSDFunc(ctx, content, schema)
	}
	return domain.PassReport(""), nil
}

func (m *mockWorkbenchService) LintYAML(ctx context.Context, content string) (*domain.Report, error) {
	if m.lintYAMLFunc != nil {
		return m.lintYAMLFunc(ctx, content)
	}
	return domain.PassReport(""), nil
}

func (m *mockWorkbenchService) Tree(ctx context.Context, content string, kind domain.FormatKind) (*tree.Result, error) {
	if m.treeFunc != nil {
		return m.treeFunc(ctx, content, kind)
	}
	return &tree.Result{}, nil
}

func (m *mockWorkbenchService) Diff(ctx context.Context, req workbench.DiffRequest) (*workbench.DiffResult, error) {
	if m.diffFunc != nil {
		return m.diffFunc(ctx, req)
	}
	return &workbench.DiffResult{Mode: req.Mode}, nil
}

func (m *mockWorkbenchService) Convert(ctx context.Context, content, from, to string, opts convert.Options) (*convert.Result, error) {
	if m.convertFunc != nil {
		return m.convertFunc(ctx, content, from, to, opts)
	}
	return &convert.Result{}, nil
}

// mockLogger records error log entries
type mockLogger struct {
	mu     sync.Mutex
	errors []map[string]interface{}
}

func (m *mockLogger) Debug(msg string, fields map[string]interface{}) {}
func (m *mockLogger) Info(msg string, fields map[string]interface{})  {}
func (m *mockLogger) Warn(msg string, fields map[string]interface{})  {}

func (m *mockLogger) Error(msg string, fields map[string]interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors = append(m.errors, fields)
}
