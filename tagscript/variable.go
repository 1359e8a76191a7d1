package tagscript

// LooseVariableGetterBlock substitutes a block whose declaration names a
// variable in the evaluation's environment, seeded by the caller or bound
// by assignment blocks. It accepts every verb but only produces output for
// known names, so {unknown} passes through to later blocks or stays in the
// text untouched.
type LooseVariableGetterBlock struct{}

func (LooseVariableGetterBlock) WillAccept(*Context) bool { return true }

func (LooseVariableGetterBlock) Process(ctx *Context) (string, bool, error) {
	if v, ok := ctx.Response.Variables[ctx.Verb.Declaration]; ok {
		return v, true, nil
	}
	return "", false, nil
}
