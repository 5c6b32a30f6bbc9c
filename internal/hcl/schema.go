package hcl

// fileRoot decodes all top-level blocks of a task file. Anything other than
// task blocks is rejected by the decoder.
type fileRoot struct {
	Tasks []*taskBlock `hcl:"task,block"`
}

// taskBlock is the HCL shape of a `task "name" { ... }` block.
type taskBlock struct {
	Name        string       `hcl:"name,label"`
	Description *string      `hcl:"description,optional"`
	DependsOn   []string     `hcl:"depends_on,optional"`
	DoFirst     []*stepBlock `hcl:"do_first,block"`
	DoLast      []*stepBlock `hcl:"do_last,block"`
}

// stepBlock is a `do_first` or `do_last` block.
type stepBlock struct {
	Print *string `hcl:"print,optional"`
	Fail  *string `hcl:"fail,optional"`
}
