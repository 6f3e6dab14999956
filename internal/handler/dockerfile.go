package handler

import (
	"fmt"
	"strings"
)

// Runtime families the generated Dockerfiles know about.
const (
	runtimeNode   = "node"
	runtimePython = "python"
	runtimeGo     = "go"
	runtimeStatic = "static"
)

// runtimeFor maps a server type (express, fastapi, gin, react, ...) to a runtime family.
func runtimeFor(serverType string) string {
	st := strings.ToLower(serverType)
	switch {
	case strings.Contains(st, "python"), strings.Contains(st, "flask"),
		strings.Contains(st, "fastapi"), strings.Contains(st, "django"):
		return runtimePython
	case st == "go", st == "golang", st == "gin", st == "fiber", st == "echo":
		return runtimeGo
	case strings.Contains(st, "react"), strings.Contains(st, "vue"), strings.Contains(st, "svelte"),
		strings.Contains(st, "static"), strings.Contains(st, "vite"), strings.Contains(st, "nginx"):
		return runtimeStatic
	}
	return runtimeNode
}

// Dockerfile returns a Dockerfile for the runtime listening on port.
func Dockerfile(runtime string, port int) []byte {
	var b strings.Builder
	switch runtime {
	case runtimePython:
		b.WriteString("FROM python:3.12-slim\n")
		b.WriteString("WORKDIR /app\n")
		b.WriteString("COPY requirements.txt .\n")
		b.WriteString("RUN pip install --no-cache-dir -r requirements.txt\n")
		b.WriteString("COPY . .\n")
		fmt.Fprintf(&b, "EXPOSE %d\n", port)
		b.WriteString(`CMD ["python", "main.py"]` + "\n")
	case runtimeGo:
		b.WriteString("FROM golang:1.23-alpine AS build\n")
		b.WriteString("WORKDIR /src\n")
		b.WriteString("COPY . .\n")
		b.WriteString("RUN CGO_ENABLED=0 go build -o /out/app .\n\n")
		b.WriteString("FROM alpine:3.20\n")
		b.WriteString("COPY --from=build /out/app /usr/local/bin/app\n")
		fmt.Fprintf(&b, "EXPOSE %d\n", port)
		b.WriteString(`ENTRYPOINT ["/usr/local/bin/app"]` + "\n")
	case runtimeStatic:
		b.WriteString("FROM node:20-alpine AS build\n")
		b.WriteString("WORKDIR /app\n")
		b.WriteString("COPY package*.json ./\n")
		b.WriteString("RUN npm ci\n")
		b.WriteString("COPY . .\n")
		b.WriteString("RUN npm run build\n\n")
		b.WriteString("FROM nginx:alpine\n")
		b.WriteString("COPY --from=build /app/dist /usr/share/nginx/html\n")
		fmt.Fprintf(&b, "EXPOSE %d\n", port)
	default:
		b.WriteString("FROM node:20-alpine\n")
		b.WriteString("WORKDIR /app\n")
		b.WriteString("COPY package*.json ./\n")
		b.WriteString("RUN npm ci --omit=dev\n")
		b.WriteString("COPY . .\n")
		if port > 0 {
			fmt.Fprintf(&b, "ENV PORT=%d\n", port)
			fmt.Fprintf(&b, "EXPOSE %d\n", port)
		}
		b.WriteString(`CMD ["npm", "start"]` + "\n")
	}
	return []byte(b.String())
}

// DockerIgnore is the .dockerignore written next to the compose file.
func DockerIgnore() []byte {
	return []byte(strings.Join([]string{
		"node_modules",
		"npm-debug.log",
		".git",
		".env",
		"*.tfstate",
		"*.tfstate.backup",
		".terraform",
		"__pycache__",
		"dist",
		"",
	}, "\n"))
}
