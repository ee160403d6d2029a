package batch

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestReadWordList(t *testing.T) {
	tests := []struct {
		name        string
		fileContent string
		want        []string
	}{
		{
			name:        "empty file",
			fileContent: "",
			want:        nil,
		},
		{
			name:        "only whitespace",
			fileContent: "   \n\t\r\n   ",
			want:        nil,
		},
		{
			name:        "simple list",
			fileContent: "Reticent\nPugnacious\nEphemeral",
			want:        []string{"Reticent", "Pugnacious", "Ephemeral"},
		},
		{
			name: "empty lines and whitespace",
			fileContent: `
Reticent

  Pugnacious

Ephemeral
`,
			want: []string{"Reticent", "Pugnacious", "Ephemeral"},
		},
		{
			name:        "windows line endings",
			fileContent: "Reticent\r\nPugnacious\r\nEphemeral\r\n",
			want:        []string{"Reticent", "Pugnacious", "Ephemeral"},
		},
		{
			name:        "duplicates are kept in order",
			fileContent: "Ephemeral\nReticent\nEphemeral",
			want:        []string{"Ephemeral", "Reticent", "Ephemeral"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpFile := filepath.Join(t.TempDir(), "wordlist.txt")
			if err := os.WriteFile(tmpFile, []byte(tt.fileContent), 0644); err != nil {
				t.Fatalf("Failed to create test file: %v", err)
			}

			got, err := ReadWordList(tmpFile)
			if err != nil {
				t.Fatalf("ReadWordList() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ReadWordList() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReadWordList_FileNotFound(t *testing.T) {
	_, err := ReadWordList("/nonexistent/wordlist.txt")
	if err == nil {
		t.Error("Expected error for non-existent file")
	}
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"unix line endings", "line1\nline2\nline3", []string{"line1", "line2", "line3"}},
		{"windows line endings", "line1\r\nline2\r\nline3", []string{"line1", "line2", "line3"}},
		{"mixed line endings", "line1\nline2\r\nline3", []string{"line1", "line2", "line3"}},
		{"empty string", "", nil},
		{"single line no ending", "single line", []string{"single line"}},
		{"trailing newline", "line1\nline2\n", []string{"line1", "line2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitLines(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("splitLines() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPartition(t *testing.T) {
	tests := []struct {
		name      string
		n         int
		size      int
		wantSizes []int
	}{
		{"empty", 0, 5, []int{}},
		{"smaller than batch", 3, 5, []int{3}},
		{"exact multiple", 10, 5, []int{5, 5}},
		{"remainder", 12, 5, []int{5, 5, 2}},
		{"batch of one", 3, 1, []int{1, 1, 1}},
		{"zero size treated as one", 2, 0, []int{1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := make([]int, tt.n)
			for i := range items {
				items[i] = i
			}

			chunks := Partition(items, tt.size)
			if len(chunks) != Count(tt.n, tt.size) {
				t.Errorf("len(Partition) = %d, Count = %d", len(chunks), Count(tt.n, tt.size))
			}

			gotSizes := []int{}
			next := 0
			for _, chunk := range chunks {
				gotSizes = append(gotSizes, len(chunk))
				for _, v := range chunk {
					if v != next {
						t.Fatalf("chunks are not contiguous: got %d, want %d", v, next)
					}
					next++
				}
			}
			if !reflect.DeepEqual(gotSizes, tt.wantSizes) {
				t.Errorf("chunk sizes = %v, want %v", gotSizes, tt.wantSizes)
			}
		})
	}
}

func TestPartition_SharesBackingArray(t *testing.T) {
	items := []string{"a", "b", "c"}
	chunks := Partition(items, 2)

	chunks[1][0] = "changed"
	if items[2] != "changed" {
		t.Errorf("write through chunk not visible in items: %v", items)
	}

	// Appending to a chunk must not clobber the next chunk
	_ = append(chunks[0], "x")
	if items[2] != "changed" {
		t.Errorf("append to chunk overwrote neighbour: %v", items)
	}
}
