package codefence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScan(t *testing.T) {
	t.Parallel()

	type fence struct {
		lang, payload string
	}

	tests := []struct {
		desc string
		give string
		want []fence
	}{
		{desc: "empty"},
		{
			desc: "no fences",
			give: "<p>hello, <em>world</em></p>",
		},
		{
			desc: "single",
			give: `<body><pre><code class="language-go">x := 1</code></pre></body>`,
			want: []fence{
				{lang: "go", payload: "x := 1"},
			},
		},
		{
			desc: "multiline payload",
			give: `<pre><code class="language-python">def f():
    return 1
</code></pre>`,
			want: []fence{
				{lang: "python", payload: "def f():\n    return 1\n"},
			},
		},
		{
			desc: "two fences stay separate",
			give: `<pre><code class="language-go">a</code></pre>` +
				"<p>and</p>" +
				`<pre><code class="language-ruby">b</code></pre>`,
			want: []fence{
				{lang: "go", payload: "a"},
				{lang: "ruby", payload: "b"},
			},
		},
		{
			desc: "language with punctuation",
			give: `<pre><code class="language-c++">f();</code></pre>`,
			want: []fence{
				{lang: "c++", payload: "f();"},
			},
		},
		{
			desc: "tag case preserved",
			give: `<pre><code class="language-Go">x</code></pre>`,
			want: []fence{
				{lang: "Go", payload: "x"},
			},
		},
		{
			desc: "pre with attributes is not a fence",
			give: `<pre tabindex="0"><code class="language-go">x</code></pre>`,
		},
		{
			desc: "code without language is not a fence",
			give: `<pre><code>plain</code></pre>`,
		},
		{
			desc: "whitespace between tags is not a fence",
			give: "<pre> <code class=\"language-go\">x</code></pre>",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.desc, func(t *testing.T) {
			t.Parallel()

			got := Scan(tt.give)
			require.Len(t, got, len(tt.want))

			last := 0
			for i, b := range got {
				assert.Equal(t, tt.want[i].lang, b.Language)
				assert.Equal(t, tt.want[i].payload, b.payload)

				assert.Equal(t,
					`<pre><code class="language-`+b.Language+`">`+b.payload+`</code></pre>`,
					tt.give[b.Start:b.End],
					"offsets must delimit the whole fence")

				assert.GreaterOrEqual(t, b.Start, last, "blocks must be in document order")
				last = b.End
			}
		})
	}
}

func TestBlockSource(t *testing.T) {
	t.Parallel()

	tests := []struct {
		desc    string
		payload string
		want    string
	}{
		{
			desc:    "no entities",
			payload: "x := 1",
			want:    "x := 1",
		},
		{
			desc:    "angle brackets",
			payload: "if x &lt; y &amp;&amp; y &gt; z {",
			want:    "if x < y && y > z {",
		},
		{
			desc:    "quotes",
			payload: "s = &quot;it&#39;s&quot;",
			want:    `s = "it's"`,
		},
		{
			desc:    "double escaped stays escaped",
			payload: "fmt.Println(&quot;&amp;lt;div&amp;gt;&quot;)",
			want:    `fmt.Println("&lt;div&gt;")`,
		},
		{
			desc:    "amp decoded last",
			payload: "&amp;amp;",
			want:    "&amp;",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.desc, func(t *testing.T) {
			t.Parallel()

			doc := `<pre><code class="language-go">` + tt.payload + `</code></pre>`
			blocks := Scan(doc)
			require.Len(t, blocks, 1)
			assert.Equal(t, tt.want, blocks[0].Source())
		})
	}
}

func TestApply(t *testing.T) {
	t.Parallel()

	tests := []struct {
		desc  string
		doc   string
		repls []Replacement
		want  string
	}{
		{
			desc: "no replacements",
			doc:  "hello, world",
			want: "hello, world",
		},
		{
			desc: "middle",
			doc:  "a [b] c",
			repls: []Replacement{
				{Start: 2, End: 5, Markup: "B"},
			},
			want: "a B c",
		},
		{
			desc: "start and end",
			doc:  "abcdef",
			repls: []Replacement{
				{Start: 0, End: 1, Markup: "<1>"},
				{Start: 5, End: 6, Markup: "<2>"},
			},
			want: "<1>bcde<2>",
		},
		{
			desc: "adjacent ranges",
			doc:  "abcd",
			repls: []Replacement{
				{Start: 1, End: 2, Markup: "x"},
				{Start: 2, End: 3, Markup: "y"},
			},
			want: "axyd",
		},
		{
			desc: "empty markup deletes",
			doc:  "keep DROP keep",
			repls: []Replacement{
				{Start: 4, End: 9},
			},
			want: "keep keep",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.desc, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, Apply(tt.doc, tt.repls))
		})
	}
}

func TestApply_badRanges(t *testing.T) {
	t.Parallel()

	tests := []struct {
		desc  string
		repls []Replacement
	}{
		{
			desc: "overlapping",
			repls: []Replacement{
				{Start: 0, End: 4, Markup: "x"},
				{Start: 2, End: 6, Markup: "y"},
			},
		},
		{
			desc: "out of order",
			repls: []Replacement{
				{Start: 4, End: 6, Markup: "x"},
				{Start: 0, End: 2, Markup: "y"},
			},
		},
		{
			desc: "inverted range",
			repls: []Replacement{
				{Start: 4, End: 2, Markup: "x"},
			},
		},
		{
			desc: "past end of document",
			repls: []Replacement{
				{Start: 4, End: 100, Markup: "x"},
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.desc, func(t *testing.T) {
			t.Parallel()

			assert.Panics(t, func() {
				Apply("0123456789", tt.repls)
			})
		})
	}
}

func TestScanApply_roundTrip(t *testing.T) {
	t.Parallel()

	doc := `<html><body>
<h1>Post</h1>
<pre><code class="language-go">fmt.Println(&quot;hi&quot;)
</code></pre>
<p>between</p>
<pre><code class="language-sql">SELECT 1;</code></pre>
</body></html>`

	blocks := Scan(doc)
	require.Len(t, blocks, 2)

	repls := make([]Replacement, len(blocks))
	for i, b := range blocks {
		repls[i] = Replacement{Start: b.Start, End: b.End, Markup: doc[b.Start:b.End]}
	}

	assert.Equal(t, doc, Apply(doc, repls),
		"splicing every block back over itself must not change the document")
}
