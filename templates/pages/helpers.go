package pages

import "net/http"

func statusTitle(status int) string {
	if t := http.StatusText(status); t != "" {
		return t
	}
	return "Error"
}

func sectionPath(slug string) string { return "/admin/productos/" + slug }

func fieldID(name, productID string) string { return name + "-" + productID }
