package device

import "time"

// dl is the deadline used throughout this package's tests; fakeTransport
// never blocks so its value doesn't matter beyond being positive.
const dl = time.Second
