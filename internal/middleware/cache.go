// cache.go
//
// A content publishing site with a versioned schema and archive navigation
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of publishdb.
// publishdb is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// publishdb is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with publishdb.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package middleware

import (
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cache"
)

// cacheKeyArgs are the query arguments that change an archive response.
// Anything else in the query string is ignored for caching.
var cacheKeyArgs = []string{"recursive", "section", "sort"}

// ArchiveCache caches GET responses for expiration, keyed by CacheKey.
func ArchiveCache(expiration time.Duration) fiber.Handler {
	return cache.New(cache.Config{
		Expiration:   expiration,
		CacheControl: true,
		KeyGenerator: CacheKey,
	})
}

// CacheKey is the request path plus the whitelisted query arguments in a
// fixed order.
func CacheKey(c *fiber.Ctx) string {
	args := c.Context().QueryArgs()
	values := url.Values{}
	for _, name := range cacheKeyArgs {
		if v := args.Peek(name); len(v) > 0 {
			values.Set(name, string(v))
		}
	}
	key := c.Path()
	if encoded := values.Encode(); encoded != "" {
		key += "?" + encoded
	}
	return key
}
