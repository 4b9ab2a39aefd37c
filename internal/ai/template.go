// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"strings"
	"text/template"

	"brandforge/internal/models"
)

// templateData parameterizes the static fallback page with whatever style
// fields survived extraction.
type templateData struct {
	FontFamily string
	Logo       string
	HeroImage  string
	Features   []string
}

// DefaultTemplate renders the built-in static landing page used when every
// generation attempt has failed. It is parameterized by the available style
// fields; a nil style yields a neutral page.
func DefaultTemplate(style *models.SiteStyle) string {
	data := templateData{
		FontFamily: "system-ui, -apple-system, sans-serif",
	}
	if style != nil {
		if len(style.Fonts) > 0 {
			data.FontFamily = style.Fonts[0]
		}
		data.Logo = style.Logo
		if len(style.Images) > 0 {
			data.HeroImage = style.Images[0]
			data.Features = style.Images[1:]
		}
	}

	var b strings.Builder
	// The template is static and the data comes from our own asset
	// pipeline, so execution cannot fail at runtime.
	if err := defaultTmpl.Execute(&b, data); err != nil {
		return ""
	}
	return b.String()
}

var defaultTmpl = template.Must(template.New("fallback").Parse(`<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <meta name="description" content="Welcome to our website">
    <title>Welcome</title>
    <style>
        :root {
            --primary: #4F46E5;
            --text: #1F2937;
            --bg: #F9FAFB;
        }

        * {
            margin: 0;
            padding: 0;
            box-sizing: border-box;
        }

        body {
            font-family: {{.FontFamily}};
            color: var(--text);
            background: var(--bg);
            line-height: 1.5;
        }

        .container {
            max-width: 1200px;
            margin: 0 auto;
            padding: 2rem;
        }

        .hero {
            min-height: 80vh;
            display: flex;
            align-items: center;
            text-align: center;
            background: linear-gradient(rgba(0,0,0,0.5), rgba(0,0,0,0.5)), url('{{.HeroImage}}') center/cover;
            color: white;
        }

        h1 {
            font-size: 3rem;
            margin-bottom: 1.5rem;
        }

        p {
            font-size: 1.25rem;
            margin-bottom: 2rem;
            max-width: 600px;
            margin-left: auto;
            margin-right: auto;
        }

        .button {
            display: inline-block;
            background: var(--primary);
            color: white;
            padding: 1rem 2rem;
            border-radius: 0.5rem;
            text-decoration: none;
            transition: transform 0.2s;
        }

        .button:hover {
            transform: translateY(-2px);
        }

        .features {
            display: grid;
            grid-template-columns: repeat(auto-fit, minmax(300px, 1fr));
            gap: 2rem;
            padding: 4rem 0;
        }

        .feature {
            text-align: center;
        }

        .feature img {
            width: 100%;
            max-width: 300px;
            height: 200px;
            object-fit: cover;
            border-radius: 0.5rem;
            margin-bottom: 1.5rem;
        }

        @media (max-width: 768px) {
            h1 {
                font-size: 2rem;
            }

            .features {
                grid-template-columns: 1fr;
            }
        }
    </style>
</head>
<body>
    <header>
        {{if .Logo}}<img src="{{.Logo}}" alt="Logo" style="max-width: 200px; margin: 1rem;">{{end}}
    </header>

    <main>
        <section class="hero">
            <div class="container">
                <h1>Welcome to Our Website</h1>
                <p>Lorem ipsum dolor sit amet, consectetur adipiscing elit. Sed do eiusmod tempor incididunt ut labore et dolore magna aliqua.</p>
                <a href="#" class="button">Get Started</a>
            </div>
        </section>

        <section class="container">
            <div class="features">
                {{range $i, $img := .Features}}
                <div class="feature">
                    <img src="{{$img}}" alt="Feature">
                    <h2>Feature</h2>
                    <p>Lorem ipsum dolor sit amet, consectetur adipiscing elit.</p>
                </div>
                {{end}}
            </div>
        </section>
    </main>
</body>
</html>`))
