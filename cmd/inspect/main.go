package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"support-chat/repositories"

	"github.com/dgraph-io/badger/v4"
	"github.com/olekukonko/tablewriter"
)

const previewLength = 60

func main() {
	dbPath := flag.String("db", "data/messages", "Path to the Badger message store")
	prefix := flag.String("prefix", "messages/", "Key prefix to scan, e.g. messages/a@b,com/")
	flag.Parse()

	db, err := openDB(*dbPath)
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer db.Close()

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"User Key", "Message ID", "Sender", "Timestamp", "Text", "Image"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	rows := 0
	err = db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefixBytes := []byte(*prefix)
		for it.Seek(prefixBytes); it.ValidForPrefix(prefixBytes); it.Next() {
			item := it.Item()
			userKey, id := splitKey(string(item.Key()))

			err := item.Value(func(v []byte) error {
				var disk repositories.DiskMessage
				if err := json.Unmarshal(v, &disk); err != nil {
					// Keep going, one bad value should not hide the rest.
					fmt.Printf("Error decoding key %s: %v\n", string(item.Key()), err)
					return nil
				}
				image := ""
				if disk.ImageBase64 != "" {
					image = fmt.Sprintf("%d B", len(disk.ImageBase64))
				}
				table.Append([]string{
					userKey,
					id,
					disk.Sender,
					disk.Timestamp.Format(time.DateTime),
					preview(disk.Text),
					image,
				})
				rows++
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Fatal(err)
	}

	table.Render()
	fmt.Printf("\n%d message(s) under %q\n", rows, *prefix)
}

func splitKey(key string) (userKey, id string) {
	rest := strings.TrimPrefix(key, "messages/")
	userKey, id, found := strings.Cut(rest, "/")
	if !found {
		return rest, ""
	}
	return userKey, id
}

func preview(text string) string {
	text = strings.ReplaceAll(text, "\n", " ")
	runes := []rune(text)
	if len(runes) <= previewLength {
		return text
	}
	return string(runes[:previewLength]) + "…"
}

// openDB opens read-only so a running server keeps its lock.
func openDB(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).
		WithReadOnly(true).
		WithLogger(nil).
		WithBypassLockGuard(true)

	db, err := badger.Open(opts)
	if err != nil {
		if strings.Contains(err.Error(), "Log truncate required") {
			return nil, fmt.Errorf("store needs recovery, stop the server and open it once in write mode: %w", err)
		}
		return nil, err
	}
	return db, nil
}
