package interfaces

import (
	"github.com/google/wire"

	"github.com/brandnewmax/searchintentanalyze/internal/interfaces/httpserver"
	"github.com/brandnewmax/searchintentanalyze/internal/interfaces/httpserver/routes/analyze"
)

// InterfacesProvider provides all interface layer dependencies
var InterfacesProvider = wire.NewSet(
	analyze.NewAnalyzeRoute,
	httpserver.NewHTTPServer,
)
