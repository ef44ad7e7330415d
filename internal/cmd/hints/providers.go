package hints

import (
	"strconv"
	"strings"

	"github.com/agentstation/wekanimport/pkg/errors"
)

// Default returns a registry with the providers for import failures.
func Default() *Registry {
	r := NewRegistry(3)
	r.Register(ProviderFunc(missingInput))
	r.Register(ProviderFunc(permissionDenied))
	r.Register(ProviderFunc(invalidInput))
	r.Register(ProviderFunc(unsupportedFormat))
	return r
}

func missingInput(ctx Context) []*Hint {
	var nf *errors.NotFoundError
	if !errors.As(ctx.Err, &nf) {
		return nil
	}
	switch nf.Resource {
	case "board document":
		return []*Hint{New("Export the board from Wekan (Board menu, Export board) and pass the file with --json")}
	case "sheet":
		return []*Hint{New("Pick an existing worksheet with --sheet, or omit it to read the active sheet")}
	case "tabular source":
		return []*Hint{New("Check the --file path")}
	default:
		return []*Hint{New("Check the --file and --json paths")}
	}
}

func permissionDenied(ctx Context) []*Hint {
	if !errors.IsPermissionDenied(ctx.Err) {
		return nil
	}
	if ctx.Output == "" || ctx.Output == "-" {
		return []*Hint{New("Check that the input files are readable")}
	}
	return []*Hint{
		New("The merged board was not written; choose a writable --output path"),
		NewCommand("Or print the merged board to standard output",
			"wekanimport -f "+quote(ctx.File, "<rows>")+" -j "+quote(ctx.JSON, "<board.json>")+" -s <swimlane> > merged.json"),
	}
}

func invalidInput(ctx Context) []*Hint {
	var validation *errors.ValidationError
	if errors.As(ctx.Err, &validation) {
		switch validation.Field {
		case "file", "json", "swimlane":
			return []*Hint{New("Pass --" + validation.Field + " or set WEKANIMPORT_" + strings.ToUpper(validation.Field))}
		case "id_format":
			return []*Hint{New("Use --id-format meteor or --id-format uuid")}
		case "format":
			return []*Hint{New("Use --format table, json, yaml or markdown")}
		}
		return nil
	}

	var parse *errors.ParseError
	if errors.As(ctx.Err, &parse) && parse.Format == "json" {
		return []*Hint{New("The board document must be a Wekan JSON export")}
	}
	return nil
}

func unsupportedFormat(ctx Context) []*Hint {
	if !errors.Is(ctx.Err, errors.ErrUnsupportedFormat) {
		return nil
	}
	return []*Hint{New("Save the spreadsheet as .xlsx or .csv")}
}

func quote(path, placeholder string) string {
	if path == "" {
		return placeholder
	}
	if strings.ContainsAny(path, " '\"") {
		return strconv.Quote(path)
	}
	return path
}
