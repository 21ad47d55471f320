package irbuilder

import (
	"github.com/tu10ng/racoon/internal/ir"
)

// timerSymbols maps the source names of the timing builtins to the runtime
// symbols they call. Both symbols take the calling line as their argument.
var timerSymbols = map[string]string{
	"starttime": "_sysy_starttime",
	"stoptime":  "_sysy_stoptime",
}

// declareRuntime declares the SysY runtime and binds it in the global scope.
func (b *Builder) declareRuntime() {
	symbols := make(map[string]string, len(timerSymbols))
	for name, sym := range timerSymbols {
		symbols[sym] = name
	}

	for _, r := range ir.Runtime {
		id := b.ctx.BuildFunc(r.Name, r.Ty, true)
		name := r.Name
		if src, ok := symbols[r.Name]; ok {
			name = src
			b.timers[id] = true
		}
		b.ctx.Scopes.Insert(name, FuncName(id))
	}
}
