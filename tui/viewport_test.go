// ABOUTME: Tests for viewport scrolling offset calculation
// ABOUTME: Verifies the three scroll phases and edge cases

package tui

import "testing"

func TestCalculateOffset(t *testing.T) {
	tests := []struct {
		name       string
		height     int
		cursorPos  int
		totalItems int
		wantOffset int
	}{
		{
			name:       "cursor at top stays at zero offset",
			height:     10,
			cursorPos:  0,
			totalItems: 100,
			wantOffset: 0,
		},
		{
			name:       "cursor in top half keeps viewport at top",
			height:     10,
			cursorPos:  4,
			totalItems: 100,
			wantOffset: 0,
		},
		{
			name:       "cursor in middle scrolls content",
			height:     10,
			cursorPos:  50,
			totalItems: 100,
			wantOffset: 45, // cursor - height/2
		},
		{
			name:       "cursor near bottom pins viewport to end",
			height:     10,
			cursorPos:  99,
			totalItems: 100,
			wantOffset: 90, // totalItems - height
		},
		{
			name:       "list shorter than viewport",
			height:     20,
			cursorPos:  3,
			totalItems: 5,
			wantOffset: 0,
		},
		{
			name:       "empty list",
			height:     10,
			cursorPos:  0,
			totalItems: 0,
			wantOffset: 0,
		},
		{
			name:       "zero height",
			height:     0,
			cursorPos:  5,
			totalItems: 100,
			wantOffset: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vm := NewViewportManager(tt.height, tt.cursorPos, tt.totalItems)
			if got := vm.CalculateOffset(); got != tt.wantOffset {
				t.Errorf("CalculateOffset() = %d, want %d", got, tt.wantOffset)
			}
		})
	}
}

func TestGetPhase(t *testing.T) {
	tests := []struct {
		name       string
		height     int
		cursorPos  int
		totalItems int
		want       ScrollPhase
	}{
		{"top phase", 10, 2, 100, TopPhase},
		{"middle phase", 10, 50, 100, MiddlePhase},
		{"bottom phase", 10, 97, 100, BottomPhase},
		{"empty list is top", 10, 0, 0, TopPhase},
		{"short list is top then bottom", 10, 1, 3, TopPhase},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vm := NewViewportManager(tt.height, tt.cursorPos, tt.totalItems)
			if got := vm.GetPhase(); got != tt.want {
				t.Errorf("GetPhase() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestOffsetMonotonicWhileScrollingDown(t *testing.T) {
	// Moving the cursor down must never scroll the content back up
	prev := 0
	for pos := range 100 {
		vm := NewViewportManager(10, pos, 100)
		offset := vm.CalculateOffset()
		if offset < prev {
			t.Fatalf("Offset decreased from %d to %d at cursor %d", prev, offset, pos)
		}
		prev = offset
	}
}
