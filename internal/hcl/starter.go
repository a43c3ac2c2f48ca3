package hcl

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
)

// StarterOptions are the values written into a starter config file.
type StarterOptions struct {
	SourceRoot string
	DestRoot   string
	StripMode  string
	Python     string
	Optimize   int
}

// RenderStarter returns the bytes of a commented pycacher.hcl file.
func RenderStarter(opts StarterOptions) []byte {
	f := hclwrite.NewEmptyFile()
	body := f.Body()

	body.AppendUnstructuredTokens(comment("# pycacher configuration\n"))
	body.AppendUnstructuredTokens(comment("# Expressions may read the environment, e.g. \"${env.HOME}/lib\".\n"))
	body.AppendNewline()
	body.SetAttributeValue("source", cty.StringVal(opts.SourceRoot))
	body.SetAttributeValue("destination", cty.StringVal(opts.DestRoot))
	body.AppendNewline()
	body.AppendUnstructuredTokens(comment("# naive: cut at the first '#'. lexical: keep '#' inside string literals.\n"))
	body.SetAttributeValue("strip", cty.StringVal(opts.StripMode))
	body.AppendNewline()

	compiler := body.AppendNewBlock("compiler", nil).Body()
	compiler.SetAttributeValue("python", cty.StringVal(opts.Python))
	compiler.SetAttributeValue("optimize", cty.NumberIntVal(int64(opts.Optimize)))

	return f.Bytes()
}

// WriteStarter creates a starter config at path. It never overwrites an
// existing file.
func WriteStarter(path string, opts StarterOptions) error {
	out, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("refusing to overwrite existing config %s", path)
		}
		return fmt.Errorf("failed to create config %s: %w", path, err)
	}
	if _, err := out.Write(RenderStarter(opts)); err != nil {
		out.Close()
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return out.Close()
}

func comment(text string) hclwrite.Tokens {
	return hclwrite.Tokens{{Type: hclsyntax.TokenComment, Bytes: []byte(text)}}
}
