package sqlite

import "testing"

func TestParseDSN(t *testing.T) {
	tests := []struct {
		name    string
		dsn     string
		want    string
		wantErr bool
	}{
		{name: "memory", dsn: "sqlite://:memory:", want: ":memory:"},
		{name: "absolute", dsn: "sqlite:///var/lib/starsheet.db", want: "/var/lib/starsheet.db"},
		{name: "relative", dsn: "sqlite://starsheet.db", want: "./starsheet.db"},
		{name: "explicit relative", dsn: "sqlite://./starsheet.db", want: "./starsheet.db"},
		{name: "with query", dsn: "sqlite://starsheet.db?mode=ro", want: "./starsheet.db?mode=ro"},
		{name: "escaped path", dsn: "sqlite://my%20data.db", want: "./my data.db"},
		{name: "wrong scheme", dsn: "postgres://localhost/db", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDSN(tt.dsn)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}
