// Copyright 2025 Florian Zenker (flo@znkr.io)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package normalize

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestDefault(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"latin-only", "already fine.", "already fine."},
		{"cjk-latin", "中文English混排", "中文 English 混排"},
		{"cjk-digits", "版本3.14很好", "版本 3.14 很好"},
		{"fullwidth-alnum", "ＡＢＣ１２３", "ABC123"},
		{"fullwidth-alnum-spacing", "下载Ｍａｃ版", "下载 Mac 版"},
		{"punctuation", "你好,世界!", "你好，世界！"},
		{"period", "今天天气很好.", "今天天气很好。"},
		{"domain", "网址example.com很好", "网址 example.com 很好"},
		{"colon", "他说:好", "他说：好"},
		{"fullwidth-colon", "数量：3个", "数量：3 个"},
		{"repeated", "真的吗？？？", "真的吗？"},
		{"space-before-punctuation", "你好 ，世界", "你好，世界"},
		{"space-after-punctuation", "你好，  世界", "你好，世界"},
		{"nfc", "e\u0301", "\u00e9"},
		{"kana", "カタカナtest", "カタカナ test"},
	}

	n := Default()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := n.Normalize(tt.input)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Normalize(%q) result is different [-want,+got]:\n%s", tt.input, diff)
			}
			if again := n.Normalize(got); again != got {
				t.Errorf("Normalize(%q) is not idempotent: %q != %q", tt.input, again, got)
			}
		})
	}
}

func TestRules(t *testing.T) {
	tests := []struct {
		rule  string
		input string
		want  string
	}{
		{"nfc", "e\u0301", "\u00e9"},
		{"fullwidth-alnum", "ｘ＝１", "x＝1"},
		{"cjk-punctuation", "好,好.a,b", "好，好.a,b"},
		{"cjk-punctuation", "好;", "好；"},
		{"repeated-punctuation", "啊！！！？？", "啊！？"},
		{"repeated-punctuation", "!!!", "!!!"},
		{"punctuation-spacing", "a ， b", "a，b"},
		{"punctuation-spacing", "a b", "a b"},
		{"punctuation-spacing", "a  ，　 b", "a，b"},
		{"punctuation-spacing", "，   x", "，x"},
		{"punctuation-spacing", "a   b ", "a   b "},
		{"cjk-latin-spacing", "a中b", "a 中 b"},
		{"cjk-latin-spacing", "中 a", "中 a"},
	}

	for _, tt := range tests {
		t.Run(tt.rule, func(t *testing.T) {
			n, err := New(tt.rule)
			if err != nil {
				t.Fatal(err)
			}
			got := n.Normalize(tt.input)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Normalize(%q) result is different [-want,+got]:\n%s", tt.input, diff)
			}
		})
	}
}

func TestNew(t *testing.T) {
	n, err := New("cjk-latin-spacing", "nfc")
	if err != nil {
		t.Fatalf("New(...) failed: %v", err)
	}
	if diff := cmp.Diff([]string{"cjk-latin-spacing", "nfc"}, n.Names()); diff != "" {
		t.Errorf("Names() result is different [-want,+got]:\n%s", diff)
	}

	if _, err := New("nfc", "no-such-rule"); err == nil {
		t.Errorf("New(\"no-such-rule\") succeeded, want error")
	}
}

func TestDefaultNames(t *testing.T) {
	want := []string{
		"nfc",
		"fullwidth-alnum",
		"cjk-punctuation",
		"repeated-punctuation",
		"punctuation-spacing",
		"cjk-latin-spacing",
	}
	if diff := cmp.Diff(want, Default().Names()); diff != "" {
		t.Errorf("Default().Names() result is different [-want,+got]:\n%s", diff)
	}
}

func TestFunc(t *testing.T) {
	var n Normalizer = Func(func(s string) string { return s + "!" })
	if got := n.Normalize("a"); got != "a!" {
		t.Errorf("Normalize(\"a\") = %q, want %q", got, "a!")
	}
}

func TestPunctuationSpacingLongRun(t *testing.T) {
	// Each run of spaces is scanned once, a megabyte of spaces takes milliseconds.
	const n = 1 << 20
	for _, tt := range []struct {
		input, want string
	}{
		{"a" + strings.Repeat(" ", n) + "，", "a，"},
		{"a" + strings.Repeat(" ", n) + "b", "a" + strings.Repeat(" ", n) + "b"},
	} {
		start := time.Now()
		got := punctuationSpacing(tt.input)
		if elapsed := time.Since(start); elapsed > 5*time.Second {
			t.Errorf("punctuationSpacing(...) took %v for %d spaces", elapsed, n)
		}
		if got != tt.want {
			t.Errorf("punctuationSpacing(...) returned %d bytes, want %d", len(got), len(tt.want))
		}
	}
}
