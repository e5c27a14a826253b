package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gen2brain/beeep"
)

// scan-drop watches directories for scanned exam PDFs and uploads them to
// the vault server as they appear. Scanner software writes files in bursts,
// so each file gets a short settle delay before upload.

var (
	serverAddr = flag.String("server", "http://localhost:8080", "Vault server address")
	watchDir   = flag.String("watch", "./scans", "Directory to watch for PDFs")
	settle     = flag.Duration("settle", 2*time.Second, "Delay before uploading a new file")
	notify     = flag.Bool("notify", true, "Show desktop notifications for upload results")
)

func main() {
	flag.Parse()

	if err := os.MkdirAll(*watchDir, 0755); err != nil {
		log.Fatalf("failed to create watch directory: %v", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Fatalf("failed to create watcher: %v", err)
	}
	defer watcher.Close()

	if err := watcher.Add(*watchDir); err != nil {
		log.Fatalf("failed to watch %s: %v", *watchDir, err)
	}
	log.Printf("Watching %s for scanned papers", *watchDir)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// Track paths already scheduled so rapid Write events don't double-upload.
	pending := make(map[string]bool)
	uploaded := make(chan string)

	for {
		select {
		case <-stop:
			log.Printf("Shutting down")
			return

		case path := <-uploaded:
			delete(pending, path)

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if !strings.EqualFold(filepath.Ext(event.Name), ".pdf") {
				continue
			}
			if pending[event.Name] {
				continue
			}
			pending[event.Name] = true

			go func(path string) {
				defer func() { uploaded <- path }()
				time.Sleep(*settle)
				if err := uploadPDF(*serverAddr, path); err != nil {
					log.Printf("upload failed for %s: %v", path, err)
					notifyResult("Scan upload failed", fmt.Sprintf("%s: %v", filepath.Base(path), err))
					return
				}
				log.Printf("uploaded %s", path)
				notifyResult("Scan uploaded", filepath.Base(path))
			}(event.Name)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Printf("watcher error: %v", err)
		}
	}
}

// uploadPDF posts one PDF to the server's upload endpoint.
func uploadPDF(server, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, file); err != nil {
		return err
	}
	if err := writer.Close(); err != nil {
		return err
	}

	url := strings.TrimRight(server, "/") + "/api/v1/papers/upload"
	req, err := http.NewRequest(http.MethodPost, url, &body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	client := &http.Client{Timeout: 5 * time.Minute}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, strings.TrimSpace(string(payload)))
	}
	return nil
}

func notifyResult(title, message string) {
	if !*notify {
		return
	}
	if err := beeep.Notify(title, message, ""); err != nil {
		log.Printf("notification failed: %v", err)
	}
}
