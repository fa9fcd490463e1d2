package main

import (
	"context"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vmunix/admit/internal/library"
	"github.com/vmunix/admit/pkg/quality"
)

func newItemsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "items",
		Short: "Manage library items and their imported files",
	}
	cmd.AddCommand(newItemsAddCmd(a), newItemsListCmd(a), newItemsFilesCmd(a))
	return cmd
}

type itemJSON struct {
	ID      int64          `json:"id"`
	Family  quality.Family `json:"family"`
	Title   string         `json:"title"`
	Year    int            `json:"year,omitempty"`
	AddedAt string         `json:"added_at"`
}

func toItemJSON(it *library.Item) itemJSON {
	return itemJSON{ID: it.ID, Family: it.Family, Title: it.Title, Year: it.Year, AddedAt: it.AddedAt.UTC().Format("2006-01-02T15:04:05Z")}
}

func newItemsAddCmd(a *app) *cobra.Command {
	var year int
	cmd := &cobra.Command{
		Use:   "add [flags] <title>",
		Short: "Add a movie or album",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			family, err := familyFlag(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			store, db, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			it := &library.Item{Family: family, Title: args[0], Year: year}
			if err := store.AddItem(ctx, it); err != nil {
				return err
			}
			a.log.Debug("item added", "id", it.ID, "family", it.Family, "title", it.Title)
			w := cmd.OutOrStdout()
			if a.jsonOutput {
				return printJSON(w, toItemJSON(it))
			}
			_, err = io.WriteString(w, "added item "+strconv.FormatInt(it.ID, 10)+"\n")
			return err
		},
	}
	cmd.Flags().StringP("family", "f", string(quality.FamilyMovie), "Media family: movie or music")
	cmd.Flags().IntVar(&year, "year", 0, "Release year")
	return cmd
}

func newItemsListCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List library items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var filter library.ItemFilter
			if s, _ := cmd.Flags().GetString("family"); s != "" {
				f, err := quality.ParseFamily(s)
				if err != nil {
					return err
				}
				filter.Family = &f
			}
			return a.listItems(cmd.Context(), cmd.OutOrStdout(), filter)
		},
	}
	cmd.Flags().StringP("family", "f", "", "Only list one family")
	return cmd
}

func (a *app) listItems(ctx context.Context, w io.Writer, filter library.ItemFilter) error {
	store, db, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	items, _, err := store.ListItems(ctx, filter)
	if err != nil {
		return err
	}
	if a.jsonOutput {
		out := make([]itemJSON, 0, len(items))
		for _, it := range items {
			out = append(out, toItemJSON(it))
		}
		return printJSON(w, out)
	}
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		year := ""
		if it.Year > 0 {
			year = strconv.Itoa(it.Year)
		}
		rows = append(rows, []string{strconv.FormatInt(it.ID, 10), string(it.Family), it.Title, year})
	}
	printTable(w, []string{"ID", "Family", "Title", "Year"}, rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight})
	return nil
}

type fileJSON struct {
	ID           int64     `json:"id"`
	RelativePath string    `json:"relative_path"`
	SizeBytes    int64     `json:"size_bytes"`
	Quality      modelJSON `json:"quality"`
}

func newItemsFilesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "files <item-id>",
		Short: "List the files imported for an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			store, db, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			item, err := store.GetItem(ctx, id)
			if err != nil {
				return err
			}
			files, _, err := store.ListFiles(ctx, library.FileFilter{ItemID: &id})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if a.jsonOutput {
				out := make([]fileJSON, 0, len(files))
				for _, f := range files {
					out = append(out, fileJSON{ID: f.ID, RelativePath: f.RelativePath, SizeBytes: f.SizeBytes, Quality: toModelJSON(item.Family, f.Quality)})
				}
				return printJSON(w, out)
			}
			rows := make([][]string, 0, len(files))
			for _, f := range files {
				rows = append(rows, []string{strconv.FormatInt(f.ID, 10), f.RelativePath, formatBytes(f.SizeBytes), f.Quality.String()})
			}
			printTable(w, []string{"ID", "File", "Size", "Quality"}, rows,
				[]columnAlignment{alignRight, alignLeft, alignRight, alignLeft})
			return nil
		},
	}
}
