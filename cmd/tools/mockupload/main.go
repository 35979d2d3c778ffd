package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Server base URL")
	section := flag.String("section", "cuidado-capilar", "Section slug")
	id := flag.String("id", "", "Product ID")
	name := flag.String("name", "", "Product name (nombre)")
	price := flag.String("price", "", "Product price (precio)")
	desc := flag.String("desc", "", "Product description (descripcion)")
	category := flag.String("category", "", "Product category (categoria); defaults to section")
	image := flag.String("image", "", "Image file to upload (optional)")
	dryRun := flag.Bool("dry-run", false, "Only print the request, don't send")

	flag.Parse()

	if *id == "" {
		fmt.Fprintf(os.Stderr, "Error: -id is required\n")
		os.Exit(1)
	}
	if *category == "" {
		*category = *section
	}

	body, contentType, err := buildForm(map[string]string{
		"nombre":      *name,
		"precio":      *price,
		"descripcion": *desc,
		"categoria":   *category,
	}, *image)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building form: %v\n", err)
		os.Exit(1)
	}

	target := fmt.Sprintf("%s/api/admin/productos/%s/%s", *baseURL, *section, *id)
	fmt.Printf("POST %s\n", target)
	fmt.Printf("Content-Type: %s\n", contentType)
	fmt.Printf("Body: %d bytes\n", body.Len())

	if *dryRun {
		fmt.Println("\n[DRY RUN] Not sending request")
		return
	}

	req, err := http.NewRequest(http.MethodPost, target, body)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating request: %v\n", err)
		os.Exit(1)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error sending request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	fmt.Printf("\nResponse: %d %s\n", resp.StatusCode, resp.Status)
	fmt.Printf("Body: %s\n", string(respBody))

	if resp.StatusCode >= 400 {
		os.Exit(1)
	}
}

func buildForm(fields map[string]string, imagePath string) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return nil, "", err
		}
	}
	if imagePath != "" {
		f, err := os.Open(imagePath)
		if err != nil {
			return nil, "", err
		}
		defer f.Close()
		fw, err := mw.CreateFormFile("imagen", filepath.Base(imagePath))
		if err != nil {
			return nil, "", err
		}
		if _, err := io.Copy(fw, f); err != nil {
			return nil, "", err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return &buf, mw.FormDataContentType(), nil
}
