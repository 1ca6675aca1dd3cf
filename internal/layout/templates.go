package layout

const shellTemplate = `{{define "shell"}}<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Title}} | {{.SiteTitle}}</title>
{{- if .Description}}
<meta name="description" content="{{.Description}}">
{{- end}}
<link rel="stylesheet" href="{{.Stylesheet}}">
</head>
<body>
<header>
<div class="container">
<nav>
<div class="logo">{{.SiteTitle}}</div>
<ul class="nav-links">
{{- range .Menu}}
<li><a href="{{.Href}}"{{if .Current}} aria-current="page"{{end}}>{{.Label}}</a></li>
{{- end}}
</ul>
</nav>
</div>
</header>
{{template "main" .}}
<footer>
<div class="container">
<p>{{.Footer}}</p>
</div>
</footer>
</body>
</html>
{{end}}

{{define "listing"}}
{{- if .Listing}}
{{- range .Listing}}
<div class="blog-post-preview">
<h2><a href="{{.Href}}">{{.Title}}</a></h2>
{{- if .Date}}
{{template "date" .Date}}
{{- end}}
</div>
{{- end}}
{{- else}}
<p>Coming soon...</p>
{{- end}}
{{end}}

{{define "date"}}<time datetime="{{.Machine}}">{{.Display}}</time>{{end}}
`

const homeTemplate = `{{define "main"}}<main>
<section class="hero">
<div class="container">
{{.Content}}
</div>
</section>
<section class="featured">
<div class="container">
<h2>Latest Posts</h2>
<div class="posts-grid">
{{- template "listing" .}}
</div>
</div>
</section>
</main>{{end}}`

const pageTemplate = `{{define "main"}}<main class="page-content">
<article>
<h1>{{.Title}}</h1>
{{- if .Date}}
{{template "date" .Date}}
{{- end}}
{{.Content}}
{{- if .ShowListing}}
<div class="blog-list">
{{- template "listing" .}}
</div>
{{- end}}
</article>
</main>{{end}}`
