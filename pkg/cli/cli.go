package cli

import (
	"bufio"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mschloeman/glitchart/pkg/glitch"
)

func usage() {
	fmt.Println("Commands available:")
	fmt.Println("  /  - select and apply a glitch")
	fmt.Println("  r  - set the target region (empty = whole image)")
	fmt.Println("  o  - open another image at runtime")
	fmt.Println("  s  - save current image")
	fmt.Println("  t  - save current image to a temp file in the workspace")
	fmt.Println("  u  - check for updates")
	fmt.Println("  h  - show this help message")
	fmt.Println("  q  - quit")
}

// RunCLI drives the interactive glitch loop. Each applied command replaces the
// working image, so glitches chain: the output of one becomes the input of the
// next.
func RunCLI() {
	var inputImagePath string
	if len(os.Args) >= 2 {
		inputImagePath = os.Args[1]
	}

	store := NewMetaStore(glitch.Commands)

	var cur image.Image
	var currentFormat string
	var region glitch.Region
	if inputImagePath != "" {
		img, format, err := LoadImage(inputImagePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to read image %s: %v\n", inputImagePath, err)
			os.Exit(1)
		}
		cur = img
		currentFormat = format
		// Preview is optional; ignore errors so unsupported terminals still work.
		_ = PreviewImage(cur, currentFormat)
		if info, ierr := GetImageInfoImage(cur); ierr == nil {
			fmt.Println(info)
		}
	}

	fmt.Println("Glitch Art Terminal")
	usage()

	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print("> ")
		r, _, err := reader.ReadRune()
		if err != nil {
			fmt.Fprintf(os.Stderr, "read input error: %v\n", err)
			continue
		}

		switch r {
		case '/':
			if cur == nil {
				fmt.Println("No image loaded. Press 'o' to open an image first, or provide an image path as the first argument.")
				continue
			}
			commandName, err := selectCommand(store)
			if err != nil {
				fmt.Println(err)
				continue
			}
			if commandName == "" {
				continue
			}

			c, ok := store.Lookup(commandName)
			if !ok {
				fmt.Printf("unknown command: %s\n", commandName)
				continue
			}

			tooltip, _ := store.GetTooltip(commandName)
			fmt.Println("\n" + tooltip + "\n")

			rawArgs := make([]string, len(c.Args))
			for i, p := range c.Args {
				typeLabel := p.Type
				if p.Type == "enum" && p.Description != "" {
					typeLabel = fmt.Sprintf("enum(%s)", p.Description)
				}
				label := p.Name
				if !p.Required {
					label += " [optional]"
				}
				val, perr := PromptLine(fmt.Sprintf("%s (%s): ", label, typeLabel))
				if perr != nil {
					fmt.Fprintf(os.Stderr, "input error: %v\n", perr)
					val = ""
				}
				rawArgs[i] = val
			}

			args, err := NormalizeArgs(store, commandName, rawArgs)
			if err != nil {
				fmt.Fprintf(os.Stderr, "input validation error: %v\n", err)
				fmt.Println("aborting command due to input errors")
				continue
			}

			newImg, err := glitch.Apply(cur, region, commandName, args)
			if err != nil {
				fmt.Fprintf(os.Stderr, "apply command error: %v\n", err)
				continue
			}
			cur = newImg
			fmt.Printf("Applied %s to %s\n", commandName, FormatRegion(region))
			_ = PreviewImage(cur, currentFormat)
			if info, ierr := GetImageInfoImage(cur); ierr == nil {
				fmt.Println(info)
			}

		case 'r':
			if cur == nil {
				fmt.Println("No image loaded.")
				continue
			}
			b := cur.Bounds()
			line, _ := PromptLine(fmt.Sprintf("Region x0 y0 x1 y1 within %dx%d (empty = whole image): ", b.Dx(), b.Dy()))
			reg, err := ParseRegion(line)
			if err != nil {
				fmt.Fprintf(os.Stderr, "invalid region: %v\n", err)
				continue
			}
			region = reg
			fmt.Printf("Region set to %s\n", FormatRegion(region))

		case 's':
			if cur == nil {
				fmt.Println("No image loaded.")
				continue
			}
			out, _ := PromptLine("Enter output filename: ")
			if out == "" {
				fmt.Println("no filename provided")
				continue
			}
			if err := SaveImage(out, cur); err != nil {
				fmt.Fprintf(os.Stderr, "failed to write image: %v\n", err)
				continue
			}
			fmt.Printf("Saved to %s\n", out)

		case 't':
			if cur == nil {
				fmt.Println("No image loaded.")
				continue
			}
			base := DefaultImagePath()
			if err := SetupImagePath(base); err != nil {
				fmt.Fprintf(os.Stderr, "workspace setup failed: %v\n", err)
				continue
			}
			path := filepath.Join(TempDir(base), TempFileName(".png"))
			if err := SaveImage(path, cur); err != nil {
				fmt.Fprintf(os.Stderr, "failed to write temp image: %v\n", err)
				continue
			}
			fmt.Printf("Saved to %s\n", path)

		case 'o':
			newPath, perr := PromptLineOrFzf("Enter path to image to open, or '/' for fzf (empty to cancel): ")
			if perr != nil {
				fmt.Fprintf(os.Stderr, "input error: %v\n", perr)
				continue
			}
			if newPath == "" {
				fmt.Println("open cancelled")
				continue
			}

			img, format, err := LoadImage(newPath)
			if err != nil {
				fmt.Fprintf(os.Stderr, "failed to read image %s: %v\n", newPath, err)
				continue
			}
			cur = img
			currentFormat = format
			region = glitch.Region{} // region belongs to the previous image
			fmt.Printf("Opened %s\n", newPath)
			_ = PreviewImage(cur, currentFormat)
			if info, ierr := GetImageInfoImage(cur); ierr == nil {
				fmt.Println(info)
			}

		case 'u':
			if err := CheckForUpdates(); err != nil {
				fmt.Fprintf(os.Stderr, "update check error: %v\n", err)
			}

		case 'h':
			usage()

		case 'q':
			fmt.Println("Exiting...")
			return

		default:
			// ignore other keys
		}
	}
}

// selectCommand picks a command via fzf, with a numbered textual fallback when
// fzf is unavailable. Returns "" if the user cancels.
func selectCommand(store *MetaStore) (string, error) {
	name, err := SelectCommandWithFzf(store.Commands)
	if err == nil && name != "" {
		return name, nil
	}

	fmt.Println("Command selection (fallback):")
	for i, c := range store.Commands {
		fmt.Printf("  %d) %s - %s\n", i+1, c.Name, c.Description)
	}
	selection, _ := PromptLine("Enter number or command name (leave empty to cancel): ")
	if selection == "" {
		fmt.Println("selection cancelled")
		return "", nil
	}
	if idx, perr := strconv.Atoi(selection); perr == nil {
		if idx < 1 || idx > len(store.Commands) {
			return "", fmt.Errorf("invalid selection")
		}
		return store.Commands[idx-1].Name, nil
	}

	selLower := strings.ToLower(selection)
	for _, c := range store.Commands {
		if strings.ToLower(c.Name) == selLower {
			return c.Name, nil
		}
	}
	var matches []string
	for _, c := range store.Commands {
		if strings.HasPrefix(strings.ToLower(c.Name), selLower) {
			matches = append(matches, c.Name)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return "", fmt.Errorf("unknown command: %s", selection)
	default:
		return "", fmt.Errorf("ambiguous selection, candidates: %s", strings.Join(matches, ", "))
	}
}
