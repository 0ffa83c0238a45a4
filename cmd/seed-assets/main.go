// Command seed-assets uploads a menu image to the storage bucket and points
// the matching menu_items row at its public URL. It is a one-shot migration
// run by an operator, never by the server.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"mime"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/zafran-house/ordering/internal/supabase"
)

func main() {
	var (
		envFile = flag.String("env", ".env", "Path to .env with SUPABASE_URL and SUPABASE_SERVICE_KEY")
		bucket  = flag.String("bucket", "menu-images", "Storage bucket name")
		file    = flag.String("file", "", "Image file to upload (required)")
		object  = flag.String("object", "", "Object path in the bucket (defaults to the file name)")
		itemID  = flag.String("item-id", "", "menu_items row to update (required)")
		dryRun  = flag.Bool("dry-run", false, "Upload nothing; print what would happen")
	)
	flag.Parse()

	if *file == "" || *itemID == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := godotenv.Load(*envFile); err != nil {
		log.Printf("no env file at %s, using process environment", *envFile)
	}

	url := os.Getenv("SUPABASE_URL")
	serviceKey := os.Getenv("SUPABASE_SERVICE_KEY")
	if url == "" || serviceKey == "" {
		log.Fatal("SUPABASE_URL and SUPABASE_SERVICE_KEY are required")
	}

	objectPath := *object
	if objectPath == "" {
		objectPath = filepath.Base(*file)
	}

	data, err := os.ReadFile(filepath.Clean(*file))
	if err != nil {
		log.Fatalf("read %s: %v", *file, err)
	}

	contentType := mime.TypeByExtension(filepath.Ext(*file))

	client, err := supabase.New(supabase.Config{ProjectURL: url, ServiceKey: serviceKey})
	if err != nil {
		log.Fatalf("supabase client: %v", err)
	}

	publicURL := client.Storage().PublicURL(*bucket, objectPath)

	if *dryRun {
		fmt.Printf("would upload %s (%d bytes) to %s/%s and set menu_items.%s image_url=%s\n",
			*file, len(data), *bucket, objectPath, *itemID, publicURL)
		return
	}

	ctx := context.Background()

	if err := client.Storage().Upload(ctx, *bucket, objectPath, data, contentType, true); err != nil {
		log.Fatalf("upload: %v", err)
	}

	_, err = client.From("menu_items").
		Update(map[string]string{"image_url": publicURL}).
		Eq("id", *itemID).
		ExecuteWithServiceKey(ctx)
	if err != nil {
		log.Fatalf("update menu item: %v", err)
	}

	fmt.Printf("uploaded %s and set image_url for item %s\n%s\n", objectPath, *itemID, publicURL)
}
