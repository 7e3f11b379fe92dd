// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

// initDBCommand drops and recreates the content tables
func initDBCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "init-db",
		Usage:  "Drop and recreate the posts, categories and tags tables",
		Flags:  []cli.Flag{configFlag()},
		Action: r.InitDB,
	}
}

// populateDBCommand syncs the content repository and imports its posts
func populateDBCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "populate-db",
		Usage: "Clone or pull the EBK website repository and import its posts",
		Flags: []cli.Flag{
			configFlag(),
			&cli.BoolFlag{
				Name:  "skip-sync",
				Usage: "Import from the local checkout without cloning or pulling",
			},
			&cli.BoolFlag{
				Name:  "fail-fast",
				Usage: "Stop at the first file that fails to import",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Print the import summary as JSON",
			},
		},
		Action: r.PopulateDB,
	}
}

// postsCommand inspects imported content
func postsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "posts",
		Usage: "Inspect imported posts",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List imported posts, newest first",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:  "category",
						Usage: "Only posts in this category",
					},
					&cli.StringFlag{
						Name:  "tag",
						Usage: "Only posts with this tag",
					},
					&cli.BoolFlag{
						Name:  "drafts",
						Usage: "Include draft posts",
						Value: true,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.ListPosts,
			},
			{
				Name:  "show",
				Usage: "Show a single post by url",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "url",
					},
				},
				Flags: []cli.Flag{
					configFlag(),
					&cli.BoolFlag{
						Name:  "html",
						Usage: "Render the body as HTML",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Write the rendered HTML to a file",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.ShowPost,
			},
			{
				Name:  "terms",
				Usage: "List categories and tags with post counts",
				Flags: []cli.Flag{
					configFlag(),
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.ListTerms,
			},
		},
	}
}
