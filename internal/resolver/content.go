package resolver

import (
	"fmt"
	"strings"
)

const managedHeader = "# This file is being maintained by Puppet.\n# DO NOT EDIT\n"

// YPConf builds the /etc/yp.conf content.
func YPConf(domain, server string, broadcast bool) string {
	var b strings.Builder
	b.WriteString(managedHeader)
	if broadcast {
		fmt.Fprintf(&b, "domain %s broadcast\n", domain)
	} else {
		fmt.Fprintf(&b, "domain %s server %s\n", domain, server)
	}
	return b.String()
}

// DefaultDomain builds the /etc/defaultdomain content.
func DefaultDomain(domain string) string {
	return domain + "\n"
}

// YPServers builds the Solaris binding ypservers content.
func YPServers(server string) string {
	return server + "\n"
}
