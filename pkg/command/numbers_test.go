package command

import "testing"

func TestNumberFrom(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   int
		wantOk bool
	}{
		{name: "digit", text: "go to page 3", want: 3, wantOk: true},
		{name: "large digit", text: "jump to page 42", want: 42, wantOk: true},
		{name: "word", text: "go to page twelve", want: 12, wantOk: true},
		{name: "word fifteen", text: "page fifteen please", want: 15, wantOk: true},
		{name: "word twenty", text: "go to page twenty", want: 20, wantOk: true},
		{name: "word wins over digit", text: "page two not 9", want: 2, wantOk: true},
		{name: "no number", text: "go to the next one please maybe", want: 1, wantOk: true},
		{name: "nothing numeric", text: "read this aloud", want: 0, wantOk: false},
		{name: "empty", text: "", want: 0, wantOk: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := numberFrom(tt.text)
			if ok != tt.wantOk {
				t.Fatalf("numberFrom(%q) ok = %v, want %v", tt.text, ok, tt.wantOk)
			}
			if ok && got != tt.want {
				t.Errorf("numberFrom(%q) = %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}
