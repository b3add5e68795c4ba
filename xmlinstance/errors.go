package xmlinstance

import "errors"

// ErrUnknownShopType is returned by Load when an <SPInstance> names a
// shop type other than FixedOrder, FlowShop, or JobShop.
var ErrUnknownShopType = errors.New("xmlinstance: unknown shop type")

// ErrMissingJobs is returned by Load when the required <jobs> element is
// absent.
var ErrMissingJobs = errors.New("xmlinstance: missing jobs element")
