package main

import "testing"

func TestClampWorkers(t *testing.T) {
	for in, want := range map[int]int{-2: 1, 0: 1, 1: 1, 8: 8} {
		if got := clampWorkers(in); got != want {
			t.Fatalf("clampWorkers(%d) = %d, want %d", in, got, want)
		}
	}
}
