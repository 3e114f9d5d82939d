/*
Package iteratable implements iteratable container data structures.

Set is a special purpose set type, suitable mainly for implementing algorithms
around scanners, parsers, etc. These kinds of algorithms are often more straightforward
to describe as set constructions and operations.

An iteration over a set will visit items which are added to the set while the
iteration is in progress. This makes fixed-point constructions like the closure of
LR items a simple loop:

    C.IterateOnce()
    for C.Next() {
        item := C.Item()
        …
        C.Add(moreItems...)   // will be visited by this loop, too
    }

Unusually, all set operations are destructive!

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package iteratable
