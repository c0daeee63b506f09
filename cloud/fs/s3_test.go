// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package fs

import "testing"

func TestContentType(t *testing.T) {
	tests := []struct {
		filename, mime string
	}{
		{"layouts/abc.json", "application/json"},
		{"previews/abc.png", "image/png"},
		{"notes.txt", ""},
	}

	for _, test := range tests {
		got := ""
		if ct := ContentType(test.filename); ct != nil {
			got = *ct
		}
		if got != test.mime {
			t.Errorf("expected ContentType(%q) = %q, got %q", test.filename, test.mime, got)
		}
	}
}
