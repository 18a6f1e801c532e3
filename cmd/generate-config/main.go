package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"

	"github.com/debemdeboas/oremos-juntos/internal/config"
	"gopkg.in/yaml.v3"
)

const header = `Oremos Juntos configuration example.
Copy this file to config.yaml and customize as needed.
Secrets are read from the environment: CMS_PASSWORD or CMS_PASSWORD_HASH,
DATABASE_URL, REDIS_URL, S3_ACCESS_KEY_ID and S3_SECRET_ACCESS_KEY.`

var sectionComments = map[string]string{
	"site":    "Name, canonical URL and analytics of the landing page.",
	"server":  "HTTP listener.",
	"theme":   "Color theme and whether visitors may switch it.",
	"store":   "Where the content document lives: sqlite, postgres or a JSON file.",
	"storage": "Image uploads: fs, s3 or minio.",
	"cms":     "Editor sessions, buffers and the privileged save procedure.",
	"content": "Markdown renderer of the legal pages.",
	"logging": "Console level and the optional rotating log file.",
}

func main() {
	out := flag.String("out", "config.example.yaml", "output file, - for stdout")
	flag.Parse()

	data, err := generate()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating YAML: %v\n", err)
		os.Exit(1)
	}

	if *out == "-" {
		os.Stdout.Write(data)
		return
	}
	if err := os.WriteFile(*out, data, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generated example config: %s\n", *out)
}

// generate renders the defaults as commented YAML.
func generate() ([]byte, error) {
	cfg := &config.Config{}
	config.ApplyDefaults(cfg)

	var doc yaml.Node
	if err := doc.Encode(cfg); err != nil {
		return nil, err
	}
	doc.HeadComment = header

	// Mapping content alternates key and value nodes.
	for i := 0; i+1 < len(doc.Content); i += 2 {
		if comment, ok := sectionComments[doc.Content[i].Value]; ok {
			doc.Content[i].HeadComment = comment
		}
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
