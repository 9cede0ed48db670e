package oecd

import portsprov "github.com/selimgur/kiraci/internal/core/ports/providers"

var _ portsprov.InflationProvider = (*Client)(nil)
