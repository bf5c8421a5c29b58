package cli

import (
	"bytes"
	"strings"
	"testing"

	"orcamentos/services"
	"orcamentos/testhelpers"
)

func TestQuoteCommand(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	fn := testhelpers.CreateTestFunction(t, app, "Desenvolvedor", 3000)
	b := testhelpers.CreateTestBudget(t, app, 1234, "ACME Ltda", 0.1, 0.19)
	testhelpers.CreateTestBudgetLine(t, app, b.Id, fn.Id, 1, services.EmployeeAllocation{
		Amount: 1, AmountUnit: services.UnitMonth, Dedication: 1, ProfitMargin: 0.5,
	})

	tests := []struct {
		name    string
		args    []string
		want    []string
		notWant []string
	}{
		{
			name: "privileged default",
			args: []string{"quote", b.Id},
			want: []string{"Orçamento #1234", "ACME Ltda", "Custo base", "R$ 4.500,00", "Lucro líquido", "R$ 195,00"},
		},
		{
			name:    "standard tier",
			args:    []string{"quote", b.Id, "--pv", "1", "--commission", "0.05"},
			want:    []string{"R$ 6.000,00", "Comissão (5,0%)", "R$ 300,00"},
			notWant: []string{"Custo base", "Lucro líquido"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := NewQuoteCommand(app)
			var out bytes.Buffer
			cmd.SetOut(&out)
			cmd.SetArgs(tt.args[1:])

			if err := cmd.Execute(); err != nil {
				t.Fatalf("Execute() error: %v", err)
			}
			got := out.String()
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("output missing %q:\n%s", w, got)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(got, w) {
					t.Errorf("output must not contain %q:\n%s", w, got)
				}
			}
		})
	}
}

func TestQuoteCommand_NotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	cmd := NewQuoteCommand(app)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"missing"})

	err := cmd.Execute()
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("expected not found error, got %v", err)
	}
}
