package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCaptionText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		caption string
		want    string
	}{
		{
			name:    "plain text untouched",
			caption: "2 cups flour\n1 egg <3",
			want:    "2 cups flour\n1 egg <3",
		},
		{
			name:    "list items become lines",
			caption: "<p>Ingredients:</p><ul><li>2 cups  flour</li><li>1 egg</li></ul>",
			want:    "Ingredients:\n2 cups flour\n1 egg",
		},
		{
			name:    "br breaks lines",
			caption: "1 onion<br>2 cloves garlic<br/>salt &amp; pepper",
			want:    "1 onion\n2 cloves garlic\nsalt & pepper",
		},
		{
			name:    "scripts and styles dropped",
			caption: "<div>1 cup milk</div><script>alert(1)</script><style>p{}</style>",
			want:    "1 cup milk",
		},
		{
			name:    "inline markup joins text",
			caption: "<p><strong>3</strong> tbsp butter</p>",
			want:    "3 tbsp butter",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, CaptionText(tt.caption))
		})
	}
}
