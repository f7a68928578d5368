package pipeline

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"github.com/stijnwollerich/sparksmetrics-website/internal/model"
)

// pageTemplate is the standalone page written for each published post.
// The article fragment is trusted HTML produced by the renderer.
var pageTemplate = template.Must(template.New("post").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{.Post.Title}} | Sparksmetrics</title>
  <meta name="description" content="{{.Post.Description}}">
  <meta property="og:title" content="{{.Post.Title}}">
  <meta property="og:description" content="{{.Post.Description}}">
  <meta name="twitter:title" content="{{.Post.Title}}">
  <meta name="twitter:description" content="{{.Post.Description}}">
  <link rel="stylesheet" href="/static/css/site.css">
</head>
<body>
<section class="bg-light-base py-10 md:py-14 border-b border-gray-100">
  <div class="content-narrow px-6">
    <a href="/blog/" class="inline-flex items-center gap-2 text-[10px] font-black uppercase tracking-widest text-gray-500 hover:text-primary transition-colors min-h-[44px]">Back to blog</a>
    <header class="mt-6">
      <p class="text-primary font-bold text-sm uppercase tracking-[0.4em] mb-4">{{.Post.Category}}</p>
      <h1 class="normal-case text-3xl md:text-5xl font-display font-black tracking-tight text-deep-charcoal mb-4">{{.Post.Title}}</h1>
      <p class="text-gray-600 text-base md:text-lg mb-0">{{.Post.Description}}</p>
      <div class="mt-6 flex flex-wrap gap-2">
        <span class="inline-flex items-center px-3 py-2 rounded-lg bg-white border border-gray-200 text-gray-500 text-[10px] font-bold uppercase tracking-widest">Published {{.Post.PublishedDate}}</span>
        <span class="inline-flex items-center px-3 py-2 rounded-lg bg-white border border-gray-200 text-gray-500 text-[10px] font-bold uppercase tracking-widest">{{.Post.ReadingTime}}</span>
      </div>
    </header>
  </div>
</section>

<section class="bg-light-base py-12 md:py-16">
  <div class="content-narrow px-6">
    <div class="aspect-video w-full rounded-2xl overflow-hidden bg-black border border-black/10">
      <iframe
        class="w-full h-full"
        src="https://www.youtube.com/embed/{{.Post.VideoID}}"
        title="YouTube video player"
        frameborder="0"
        loading="lazy"
        referrerpolicy="strict-origin-when-cross-origin"
        allow="accelerometer; autoplay; clipboard-write; encrypted-media; gyroscope; picture-in-picture; web-share"
        allowfullscreen
      ></iframe>
    </div>

    <article class="blog-prose mt-10">
{{.Article}}
    </article>
  </div>
</section>
</body>
</html>
`))

type pageData struct {
	Post    model.PostRecord
	Article template.HTML
}

// TemplateName returns the page file name for a slug
func TemplateName(slug string) string {
	return "blog_" + slug + ".html"
}

// WriteTemplate renders the page for a post and writes it into the
// templates directory. The write is a direct overwrite: a re-publish
// replaces the page for the same slug.
func WriteTemplate(templatesDir string, post model.PostRecord, articleHTML string) (string, error) {
	if err := os.MkdirAll(templatesDir, 0o755); err != nil {
		return "", fmt.Errorf("create templates dir: %w", err)
	}

	var buf bytes.Buffer
	data := pageData{
		Post:    post,
		Article: template.HTML(indentArticle(articleHTML)),
	}
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render template: %w", err)
	}

	path := filepath.Join(templatesDir, post.Template)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("write template: %w", err)
	}
	return path, nil
}

// indentArticle indents the fragment to sit inside the <article> block
func indentArticle(articleHTML string) string {
	lines := strings.Split(articleHTML, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) != "" {
			lines[i] = "      " + line
		} else {
			lines[i] = ""
		}
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n") + "\n"
}
