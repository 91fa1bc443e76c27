package tracing

import (
	"go/types"
	"testing"
)

func TestReference_Text(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Reference
		wantErr bool
	}{
		{
			name:  "plain",
			input: `"example.com/log".Logger`,
			want:  Reference{Package: "example.com/log", Name: "Logger"},
		},
		{
			name:  "spaces trimmed",
			input: `  "log/slog".Handler `,
			want:  Reference{Package: "log/slog", Name: "Handler"},
		},
		{name: "empty", input: "", wantErr: true},
		{name: "unquoted", input: "log.Logger", wantErr: true},
		{name: "unterminated", input: `"log.Logger`, wantErr: true},
		{name: "empty package", input: `"".Logger`, wantErr: true},
		{name: "no name", input: `"log"`, wantErr: true},
		{name: "method", input: `"log".Logger.Info`, wantErr: true},
		{name: "bad ident", input: `"log".1Logger`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Reference
			err := got.UnmarshalText([]byte(tt.input))
			if (err != nil) != tt.wantErr {
				t.Fatalf("UnmarshalText(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got != tt.want {
				t.Fatalf("UnmarshalText(%q) = %+v, want %+v", tt.input, got, tt.want)
			}

			raw, err := got.MarshalText()
			if err != nil {
				t.Fatalf("MarshalText: %s", err)
			}
			var back Reference
			if err := back.UnmarshalText(raw); err != nil || back != got {
				t.Fatalf("text %q does not read back: %+v, %v", raw, back, err)
			}
		})
	}
}

func TestIntKind_Text(t *testing.T) {
	var k IntKind
	if err := k.UnmarshalText([]byte("int32")); err != nil {
		t.Fatal(err)
	}
	if types.BasicKind(k) != types.Int32 {
		t.Fatalf("int32 was expected, got %s", k)
	}

	if err := k.UnmarshalText([]byte("float64")); err == nil {
		t.Fatal("error was expected for float64")
	}
	if _, err := IntKind(types.String).MarshalText(); err == nil {
		t.Fatal("error was expected for string kind")
	}
}
