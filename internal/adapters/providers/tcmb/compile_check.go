package tcmb

import portsprov "github.com/selimgur/kiraci/internal/core/ports/providers"

var _ portsprov.RateProvider = (*Client)(nil)
